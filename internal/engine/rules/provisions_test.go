package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/verdict/internal/core/model"
)

func TestProvisionsStatutoryReference(t *testing.T) {
	e := NewProvisions()
	set, err := e.Extract(context.Background(), "Title passes under section 6(1) of the Sale of Goods Act 1979.", "contract")
	require.NoError(t, err)

	a := findAuthority(t, set, "Section 6(1), Sale of Goods Act 1979")
	assert.Equal(t, "statutory provision", a.Relevance)
	assert.Equal(t, 0.77, a.Confidence)
}

func TestProvisionsBareClause(t *testing.T) {
	e := NewProvisions()
	set, err := e.Extract(context.Background(), "Clause 5.2 provides for termination on notice.", "contract")
	require.NoError(t, err)

	a := findAuthority(t, set, "Clause 5.2")
	assert.Equal(t, "referenced provision", a.Relevance)
}

func TestProvisionsAbbreviationCanonicalised(t *testing.T) {
	// "s. 12A" and "Section 12A" are the same reference.
	e := NewProvisions()
	set, err := e.Extract(context.Background(), "Liability arises under s. 12A. Section 12A is not excluded.", "contract")
	require.NoError(t, err)

	require.Len(t, set.Authorities, 1)
	assert.Equal(t, "Section 12A", set.Authorities[0].Citation)
}

func TestProvisionsObligationSentence(t *testing.T) {
	e := NewProvisions()
	set, err := e.Extract(context.Background(), "The Supplier shall deliver the goods within thirty days.", "contract")
	require.NoError(t, err)

	require.Len(t, set.Issues, 1)
	issue := set.Issues[0]
	assert.Equal(t, "obligation", issue.Category)
	assert.Equal(t, "The Supplier shall deliver the goods within thirty days", issue.Description)
	assert.Equal(t, 0.72, issue.Confidence)
}

func TestProvisionsOneIssuePerObligationSentence(t *testing.T) {
	// Two obligation verbs in one sentence still describe one duty.
	e := NewProvisions()
	set, err := e.Extract(context.Background(), "The Supplier shall deliver the goods and must insure them in transit.", "contract")
	require.NoError(t, err)

	assert.Len(t, set.Issues, 1)
}

func TestProvisionsWarranty(t *testing.T) {
	e := NewProvisions()
	set, err := e.Extract(context.Background(), "The Seller warrants that the equipment is free from defects.", "contract")
	require.NoError(t, err)

	require.Len(t, set.Issues, 1)
	assert.Equal(t, "obligation", set.Issues[0].Category)
}

func TestProvisionsDescriptor(t *testing.T) {
	d := NewProvisions().Describe()
	assert.Equal(t, "provisions", d.Name)
	assert.Equal(t, model.EngineHybrid, d.Type)
	assert.Equal(t, []string{"contract", "legislation"}, d.Specialties)
}

func TestProvisionsEmptyText(t *testing.T) {
	set, err := NewProvisions().Extract(context.Background(), "", "contract")
	require.NoError(t, err)
	assert.Zero(t, set.Count())
}
