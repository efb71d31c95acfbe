package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validItem() *TodoItem {
	return &TodoItem{
		ID:        uuid.New(),
		Title:     "Buy milk",
		CreatedAt: time.Now().UTC(),
	}
}

func TestTodoItemValidate(t *testing.T) {
	if err := validItem().Validate(); err != nil {
		t.Fatalf("expected valid item, got %v", err)
	}

	item := validItem()
	item.Title = ""
	if err := item.Validate(); err == nil {
		t.Error("expected error for empty title")
	}

	item = validItem()
	item.Title = "  padded  "
	if err := item.Validate(); err == nil {
		t.Error("expected error for untrimmed title")
	}

	item = validItem()
	item.Title = strings.Repeat("x", MaxTitleLength+1)
	if err := item.Validate(); err == nil {
		t.Error("expected error for overlong title")
	}

	item = validItem()
	item.Title = strings.Repeat("x", MaxTitleLength)
	if err := item.Validate(); err != nil {
		t.Errorf("expected title at max length to be valid, got %v", err)
	}
}

func TestTodoItemValidate_CompletionInvariant(t *testing.T) {
	now := time.Now().UTC()

	item := validItem()
	item.IsCompleted = true
	if err := item.Validate(); err == nil {
		t.Error("expected error when completed without completedAt")
	}

	item = validItem()
	item.CompletedAt = &now
	if err := item.Validate(); err == nil {
		t.Error("expected error when completedAt set without isCompleted")
	}

	item = validItem()
	item.IsCompleted = true
	item.CompletedAt = &now
	if err := item.Validate(); err != nil {
		t.Errorf("expected completed item with timestamp to be valid, got %v", err)
	}
}

func TestSetCompleted(t *testing.T) {
	now := time.Now().UTC()
	item := validItem()

	item.SetCompleted(true, now)
	if !item.IsCompleted {
		t.Error("expected isCompleted true")
	}
	if item.CompletedAt == nil || !item.CompletedAt.Equal(now) {
		t.Errorf("expected completedAt %v, got %v", now, item.CompletedAt)
	}

	item.SetCompleted(false, now.Add(time.Minute))
	if item.IsCompleted {
		t.Error("expected isCompleted false")
	}
	if item.CompletedAt != nil {
		t.Errorf("expected completedAt cleared, got %v", item.CompletedAt)
	}
}

func TestListFilterIsEmpty(t *testing.T) {
	if !(ListFilter{}).IsEmpty() {
		t.Error("zero filter should be empty")
	}
	if !(ListFilter{Search: "   "}).IsEmpty() {
		t.Error("whitespace-only search should count as empty")
	}

	completed := false
	if (ListFilter{IsCompleted: &completed}).IsEmpty() {
		t.Error("filter with isCompleted should not be empty")
	}
	if (ListFilter{Search: "milk"}).IsEmpty() {
		t.Error("filter with search should not be empty")
	}
}
