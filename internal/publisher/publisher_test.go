package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/asytuyf/genesis-vault/internal/constants"
	"github.com/asytuyf/genesis-vault/internal/models"
)

type fakeWriter struct {
	owner, repo, path, message string
	content                    []byte
	calls                      int
	err                        error
}

func (w *fakeWriter) UpdateFile(_ context.Context, owner, repo, path, message string, content []byte) error {
	w.calls++
	w.owner, w.repo, w.path, w.message, w.content = owner, repo, path, message, content
	return w.err
}

func staticPassword(pw string) PasswordSource {
	return func() (string, error) { return pw, nil }
}

func TestPublishGoals(t *testing.T) {
	writer := &fakeWriter{}
	pub := New(writer, staticPassword("hunter2"))

	goals := []models.Goal{{ID: "g1", Project: "vault", Task: "ship it", Priority: constants.PriorityHigh, Date: "2026-03-14"}}
	if err := pub.PublishGoals(context.Background(), NewCredential("hunter2"), goals); err != nil {
		t.Fatalf("PublishGoals: %v", err)
	}
	if writer.owner != constants.PublishRepoOwner || writer.repo != constants.PublishRepoName {
		t.Errorf("target = %s/%s", writer.owner, writer.repo)
	}
	if writer.path != constants.GoalsDocumentPath {
		t.Errorf("path = %q", writer.path)
	}
	if writer.message != "admin: update goals via web panel" {
		t.Errorf("message = %q", writer.message)
	}
	var got []models.Goal
	if err := json.Unmarshal(writer.content, &got); err != nil {
		t.Fatalf("content not valid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Task != "ship it" {
		t.Errorf("published goals = %+v", got)
	}
}

func TestPublishSnippetsNilBecomesEmptyArray(t *testing.T) {
	writer := &fakeWriter{}
	pub := New(writer, staticPassword("hunter2"))
	if err := pub.PublishSnippets(context.Background(), NewCredential("hunter2"), nil); err != nil {
		t.Fatalf("PublishSnippets: %v", err)
	}
	if string(writer.content) != "[]" {
		t.Errorf("nil snippets published as %q, want []", writer.content)
	}
	if writer.path != constants.SnippetDocumentPath {
		t.Errorf("path = %q", writer.path)
	}
}

func TestWrongPasswordRejected(t *testing.T) {
	writer := &fakeWriter{}
	pub := New(writer, staticPassword("hunter2"))
	err := pub.PublishGoals(context.Background(), NewCredential("guess"), nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if writer.calls != 0 {
		t.Error("rejected publish must not reach the writer")
	}
}

func TestMissingPassword(t *testing.T) {
	pub := New(&fakeWriter{}, staticPassword(""))
	if err := pub.Verify(NewCredential("")); !errors.Is(err, ErrNoPassword) {
		t.Errorf("err = %v, want ErrNoPassword", err)
	}

	pub = New(&fakeWriter{}, func() (string, error) { return "", errors.New("locked") })
	if err := pub.Verify(NewCredential("x")); !errors.Is(err, ErrNoPassword) {
		t.Errorf("err = %v, want ErrNoPassword", err)
	}
}

func TestWriterFailurePropagates(t *testing.T) {
	writer := &fakeWriter{err: errors.New("api down")}
	pub := New(writer, staticPassword("pw"))
	if err := pub.PublishGoals(context.Background(), NewCredential("pw"), nil); err == nil {
		t.Fatal("expected error from writer")
	}
}

func TestSetTarget(t *testing.T) {
	writer := &fakeWriter{}
	pub := New(writer, staticPassword("pw"))
	pub.SetTarget("someone", "elsewhere")
	if err := pub.PublishGoals(context.Background(), NewCredential("pw"), nil); err != nil {
		t.Fatalf("PublishGoals: %v", err)
	}
	if writer.owner != "someone" || writer.repo != "elsewhere" {
		t.Errorf("target = %s/%s", writer.owner, writer.repo)
	}
}
