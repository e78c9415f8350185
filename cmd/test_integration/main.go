// Command test_integration smoke-tests a running server instance.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL = "http://localhost:8080"
)

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	// 1. Health
	fmt.Println("1. Checking Health...")
	if !sendRequest("GET", "/health", nil) {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	// 2. Process a document
	fmt.Println("2. Processing Document...")
	payload := map[string]interface{}{
		"text": "Mr Justice Holt delivered judgment in Smith v Jones Holdings Ltd [2020] UKSC 11 on 12 March 2020. The claimant alleged breach of contract.",
		"options": map[string]interface{}{
			"document_type": "judgment",
		},
	}
	if !sendRequest("POST", "/process", payload) {
		fmt.Println("FAILED: Process document")
		os.Exit(1)
	}
	fmt.Println("PASSED: Process document")

	// 3. Empty text must be rejected
	fmt.Println("3. Rejecting Empty Text...")
	resp, err := rawRequest("POST", "/process", map[string]interface{}{"text": ""})
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		fmt.Println("FAILED: Empty text rejection")
		os.Exit(1)
	}
	resp.Body.Close()
	fmt.Println("PASSED: Empty text rejection")

	// 4. Stats
	fmt.Println("4. Fetching Stats...")
	if !sendRequest("GET", "/stats", nil) {
		fmt.Println("FAILED: Stats")
		os.Exit(1)
	}
	fmt.Println("PASSED: Stats")
}

func sendRequest(method, endpoint string, payload interface{}) bool {
	resp, err := rawRequest(method, endpoint, payload)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Response: %s\n", string(respBody))

	return true
}

func rawRequest(method, endpoint string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	return client.Do(req)
}
