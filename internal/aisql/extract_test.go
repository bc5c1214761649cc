package aisql

import (
	"context"
	"testing"
)

var orderQuestions = []Question{
	{Field: "order_id", Prompt: "What is the order number?"},
	{Field: "issue", Prompt: "What is the customer's problem?"},
}

func TestExtractAnswerSuccess(t *testing.T) {
	stub := &stubCompleter{text: `{"order_id": "A-1042", "issue": "package arrived damaged"}`}
	client := newTestClient(stub, nil, nil)

	result, _ := client.ExtractAnswer(context.Background(), "Order A-1042 arrived damaged...", orderQuestions, Options{})

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
	v, _ := result.Value()
	if v.Failure != nil {
		t.Fatalf("unexpected extract failure: %+v", v.Failure)
	}
	if v.Fields["order_id"] != "A-1042" {
		t.Fatalf("order_id = %q", v.Fields["order_id"])
	}
	if v.Fields["issue"] != "package arrived damaged" {
		t.Fatalf("issue = %q", v.Fields["issue"])
	}
}

func TestExtractAnswerModelReportsNoAnswer(t *testing.T) {
	stub := &stubCompleter{text: `{"error": "no order number present", "response": "the text discusses billing dates"}`}
	client := newTestClient(stub, nil, nil)

	result, _ := client.ExtractAnswer(context.Background(), "irrelevant text", orderQuestions, Options{})

	// The error/response shape is part of the contract, not an
	// invocation failure.
	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
	v, _ := result.Value()
	if v.Failure == nil {
		t.Fatal("expected an extract failure")
	}
	if v.Failure.Message != "no order number present" {
		t.Fatalf("failure message = %q", v.Failure.Message)
	}
	if v.Failure.Response != "the text discusses billing dates" {
		t.Fatalf("failure response = %q", v.Failure.Response)
	}
}

func TestExtractAnswerMissingFieldIsError(t *testing.T) {
	stub := &stubCompleter{text: `{"order_id": "A-1042"}`}
	client := newTestClient(stub, nil, nil)

	result, _ := client.ExtractAnswer(context.Background(), "some text", orderQuestions, Options{})

	if result.Status() != StatusError {
		t.Fatalf("expected Error for missing field, got %s", result.Status())
	}
}

func TestExtractAnswerErrorFieldCanBeRequested(t *testing.T) {
	questions := []Question{{Field: "error", Prompt: "What error message does the log contain?"}}
	stub := &stubCompleter{text: `{"error": "connection refused"}`}
	client := newTestClient(stub, nil, nil)

	result, _ := client.ExtractAnswer(context.Background(), "log: connection refused", questions, Options{})

	if result.Status() != StatusSuccess {
		t.Fatalf("expected Success, got %s (err=%v)", result.Status(), result.Err())
	}
	v, _ := result.Value()
	if v.Failure != nil {
		t.Fatalf("requested error field misread as contract failure: %+v", v.Failure)
	}
	if v.Fields["error"] != "connection refused" {
		t.Fatalf("error field = %q", v.Fields["error"])
	}
}

func TestExtractAnswerUnparseableIsError(t *testing.T) {
	stub := &stubCompleter{text: "Sure! Here are the answers you asked for: ..."}
	client := newTestClient(stub, nil, nil)

	result, _ := client.ExtractAnswer(context.Background(), "text", orderQuestions, Options{})

	if result.Status() != StatusError {
		t.Fatalf("expected Error for unparseable response, got %s", result.Status())
	}
}
