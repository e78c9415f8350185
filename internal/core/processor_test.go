package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/verdict/internal/core/model"
)

func TestProcessDocumentMergesEngineResults(t *testing.T) {
	alpha := ruleMock("alpha", 0.9, personSet("John Smith", 0.9))
	beta := ruleMock("beta", 0.8, &model.EntitySet{
		Persons: []model.Person{
			{Name: "J. Smith", Role: "claimant", Confidence: 0.8},
			{Name: "Jane Doe", Role: "defendant", Confidence: 0.7},
		},
	})
	p := NewProcessor(newTestRegistry(t, alpha, beta), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "The parties attended the hearing.", model.ExtractionOptions{
		RequiredAccuracy: model.AccuracyNearPerfect,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, res.EnginesUsed)
	assert.Equal(t, "full-consensus", res.Transparency.Strategy)

	// "J. Smith" collapses into "John Smith"; the higher-confidence
	// instance survives.
	require.Len(t, res.Entities.Persons, 2)
	assert.Equal(t, "John Smith", res.Entities.Persons[0].Name)
	assert.Equal(t, 0.9, res.Entities.Persons[0].Confidence)
	assert.Equal(t, "Jane Doe", res.Entities.Persons[1].Name)
	assert.Equal(t, 1, res.ConflictsResolved)

	assert.InDelta(t, 0.89, res.ConsensusConfidence, 1e-9)
	assert.InDelta(t, 0.85, res.Stats.AverageConfidence, 1e-9)
	assert.Greater(t, res.Stats.TotalTime, time.Duration(0))

	require.Len(t, res.Transparency.Contributions, 2)
	assert.InDelta(t, 0.9/1.7, res.Transparency.Contributions[0].Weight, 1e-9)
	assert.InDelta(t, 0.8/1.7, res.Transparency.Contributions[1].Weight, 1e-9)
}

func TestProcessDocumentContainsEnginePanic(t *testing.T) {
	alpha := ruleMock("alpha", 0.8, personSet("John Smith", 0.9))
	volatile := ruleMock("volatile", 0.9, nil)
	volatile.Panic = true
	p := NewProcessor(newTestRegistry(t, alpha, volatile), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "The parties attended.", model.ExtractionOptions{
		RequiredAccuracy: model.AccuracyNearPerfect,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha"}, res.EnginesUsed)
	require.Len(t, res.Entities.Persons, 1)
	assert.InDelta(t, 0.82, res.ConsensusConfidence, 1e-9)
}

func TestProcessDocumentAbandonsHangingEngine(t *testing.T) {
	alpha := ruleMock("alpha", 0.8, personSet("John Smith", 0.9))
	tarpit := ruleMock("tarpit", 0.9, personSet("Jane Doe", 0.9))
	tarpit.Hang = true
	p := NewProcessor(newTestRegistry(t, alpha, tarpit), time.Second, nil)

	start := time.Now()
	res, err := p.ProcessDocument(context.Background(), "The parties attended.", model.ExtractionOptions{
		RequiredAccuracy:  model.AccuracyNearPerfect,
		MaxProcessingTime: 100 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, []string{"alpha"}, res.EnginesUsed)
	require.Len(t, res.Entities.Persons, 1)
	assert.Equal(t, "John Smith", res.Entities.Persons[0].Name)
}

func TestProcessDocumentAllEnginesFailing(t *testing.T) {
	volatile := ruleMock("volatile", 0.9, nil)
	volatile.Panic = true
	broken := ruleMock("broken", 0.8, nil)
	broken.Err = errors.New("parser exploded")
	p := NewProcessor(newTestRegistry(t, volatile, broken), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "The parties attended.", model.ExtractionOptions{
		RequiredAccuracy: model.AccuracyNearPerfect,
	})
	require.NoError(t, err)

	assert.Zero(t, res.ConsensusConfidence)
	assert.Empty(t, res.EnginesUsed)
	assert.Empty(t, res.Entities.Persons)
	assert.Empty(t, res.Entities.Issues)
	assert.Empty(t, res.Entities.Events)
	assert.Empty(t, res.Entities.Authorities)
	assert.Equal(t, "full-consensus", res.Transparency.Strategy)
	assert.Empty(t, res.Transparency.Contributions)
}

func TestProcessDocumentRulesOnlyRunsSequentially(t *testing.T) {
	calls := &CallLog{}
	parties := ruleMock("parties", 0.82, personSet("John Smith", 0.9))
	citations := ruleMock("citations", 0.88, &model.EntitySet{
		Authorities: []model.Authority{{Citation: "[2020] UKSC 11", Confidence: 0.95}},
	})
	chronology := ruleMock("chronology", 0.8, &model.EntitySet{
		Events: []model.ChronologyEvent{{Date: "2020-03-01", Description: "Claim issued.", Confidence: 0.85}},
	})
	for _, e := range []*MockEngine{parties, citations, chronology} {
		e.Calls = calls
	}
	p := NewProcessor(newTestRegistry(t, parties, citations, chronology), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "The hearing begins.", model.ExtractionOptions{})
	require.NoError(t, err)

	assert.Equal(t, "rules-only", res.Transparency.Strategy)
	assert.Equal(t, []string{"parties", "citations", "chronology"}, calls.Names())
	assert.Equal(t, []string{"parties", "citations", "chronology"}, res.EnginesUsed)
	assert.Len(t, res.Entities.Persons, 1)
	assert.Len(t, res.Entities.Authorities, 1)
	assert.Len(t, res.Entities.Events, 1)
}

func TestProcessDocumentHybridRunsFollowUp(t *testing.T) {
	alpha := ruleMock("alpha", 0.8, personSet("John Smith", 0.9))
	oracle := aiMock("oracle", 0.86, personSet("Jane Doe", 0.7))
	p := NewProcessor(newTestRegistry(t, alpha, oracle), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "The parties attended.", model.ExtractionOptions{
		Complexity: model.ComplexityComplex,
	})
	require.NoError(t, err)

	assert.Equal(t, "hybrid-consensus", res.Transparency.Strategy)
	assert.Equal(t, []string{"alpha", "oracle"}, res.EnginesUsed)
	assert.Len(t, res.Entities.Persons, 2)
	assert.InDelta(t, 0.87, res.ConsensusConfidence, 1e-9)
}

func TestProcessDocumentBlankTextSkipsEngines(t *testing.T) {
	calls := &CallLog{}
	alpha := ruleMock("parties", 0.82, personSet("John Smith", 0.9))
	alpha.Calls = calls
	p := NewProcessor(newTestRegistry(t, alpha), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "  \n\t  ", model.ExtractionOptions{})
	require.NoError(t, err)

	assert.Empty(t, calls.Names())
	assert.Zero(t, res.ConsensusConfidence)
	assert.Empty(t, res.EnginesUsed)
	assert.Equal(t, "rules-only", res.Transparency.Strategy)
}

func TestProcessDocumentRejectsInvalidUTF8(t *testing.T) {
	p := NewProcessor(newTestRegistry(t, ruleMock("alpha", 0.8, personSet("John Smith", 0.9))), time.Second, nil)

	res, err := p.ProcessDocument(context.Background(), "claim\xfffile", model.ExtractionOptions{})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, res)
	assert.Zero(t, p.Stats().DocumentsProcessed)
}

func TestProcessDocumentRecordsStats(t *testing.T) {
	alpha := ruleMock("alpha", 0.9, personSet("John Smith", 0.9))
	beta := ruleMock("beta", 0.8, personSet("Jane Doe", 0.7))
	p := NewProcessor(newTestRegistry(t, alpha, beta), time.Second, nil)

	opts := model.ExtractionOptions{RequiredAccuracy: model.AccuracyNearPerfect}
	for i := 0; i < 2; i++ {
		_, err := p.ProcessDocument(context.Background(), "The parties attended.", opts)
		require.NoError(t, err)
	}

	stats := p.Stats()
	assert.Equal(t, int64(2), stats.DocumentsProcessed)
	assert.Equal(t, int64(2), stats.EngineUsage["alpha"])
	assert.Equal(t, int64(2), stats.EngineUsage["beta"])
	assert.InDelta(t, 0.89, stats.AverageConfidence, 1e-9)
	assert.Greater(t, stats.AverageProcessingTime, time.Duration(0))
}

func TestEngineStatus(t *testing.T) {
	alpha := ruleMock("alpha", 0.8, personSet("John Smith", 0.9))
	offline := ruleMock("offline", 0.86, nil)
	offline.Desc.Available = false
	p := NewProcessor(newTestRegistry(t, alpha, offline), time.Second, nil)

	status := p.EngineStatus()
	require.Len(t, status, 2)
	assert.Equal(t, "alpha", status[0].Name)
	assert.Equal(t, model.HealthHealthy, status[0].Health)
	assert.Equal(t, "offline", status[1].Name)
	assert.Equal(t, model.HealthOffline, status[1].Health)
}

func TestNewProcessorDefaults(t *testing.T) {
	p := NewProcessor(newTestRegistry(t, ruleMock("alpha", 0.8, personSet("John Smith", 0.9))), 0, nil)
	assert.Equal(t, defaultBudget, p.budget)

	_, err := p.ProcessDocument(context.Background(), "The parties attended.", model.ExtractionOptions{})
	require.NoError(t, err)
}
