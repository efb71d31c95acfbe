package graph

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"

	"todoapp/internal/cache"
	"todoapp/internal/store"
	"todoapp/internal/todo"
)

func setupTestSchema(t *testing.T) (graphql.Schema, *todo.Service) {
	t.Helper()

	s, err := store.Open(":memory:", false)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}

	svc := todo.NewService(s, cache.NewMemory(30*time.Second), 30*time.Second)
	schema, err := NewSchema(svc)
	if err != nil {
		t.Fatalf("failed to build schema: %v", err)
	}
	return schema, svc
}

func exec(t *testing.T, schema graphql.Schema, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
}

func errorCode(result *graphql.Result) string {
	if len(result.Errors) == 0 {
		return ""
	}
	code, _ := result.Errors[0].Extensions["code"].(string)
	return code
}

func TestCreateTodoMutation(t *testing.T) {
	schema, _ := setupTestSchema(t)

	result := exec(t, schema, `
		mutation {
			createTodo(input: {title: "  Buy milk  "}) {
				id
				title
				isCompleted
				completedAt
			}
		}`, nil)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	data := result.Data.(map[string]interface{})
	created := data["createTodo"].(map[string]interface{})
	if created["title"] != "Buy milk" {
		t.Errorf("expected trimmed title, got %v", created["title"])
	}
	if created["isCompleted"] != false {
		t.Errorf("expected isCompleted false, got %v", created["isCompleted"])
	}
	if created["completedAt"] != nil {
		t.Errorf("expected completedAt null, got %v", created["completedAt"])
	}
}

func TestCreateTodoMutation_ValidationCode(t *testing.T) {
	schema, _ := setupTestSchema(t)

	result := exec(t, schema, `mutation { createTodo(input: {title: "   "}) { id } }`, nil)
	if code := errorCode(result); code != "TODO_VALIDATION" {
		t.Fatalf("expected TODO_VALIDATION, got %q (errors: %v)", code, result.Errors)
	}
}

func TestTodosQuery_Filters(t *testing.T) {
	schema, svc := setupTestSchema(t)
	ctx := context.Background()

	svc.Create(ctx, "Buy milk", false)
	svc.Create(ctx, "Walk dog", true)

	result := exec(t, schema, `query { todos(isCompleted: true) { title isCompleted } }`, nil)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	todos := result.Data.(map[string]interface{})["todos"].([]interface{})
	if len(todos) != 1 {
		t.Fatalf("expected 1 completed todo, got %d", len(todos))
	}
	if todos[0].(map[string]interface{})["title"] != "Walk dog" {
		t.Errorf("unexpected todo %v", todos[0])
	}

	result = exec(t, schema, `query { todos(search: "MILK") { title } }`, nil)
	todos = result.Data.(map[string]interface{})["todos"].([]interface{})
	if len(todos) != 1 || todos[0].(map[string]interface{})["title"] != "Buy milk" {
		t.Errorf("expected search match, got %v", todos)
	}
}

func TestTodoQuery_NullForMissing(t *testing.T) {
	schema, _ := setupTestSchema(t)

	result := exec(t, schema, `query { todo(id: "6a2f44b3-9a52-4d2e-bf01-1c6ad2c1a111") { id } }`, nil)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Data.(map[string]interface{})["todo"] != nil {
		t.Errorf("expected null todo, got %v", result.Data)
	}
}

func TestTodoQuery_ById(t *testing.T) {
	schema, svc := setupTestSchema(t)

	item, _ := svc.Create(context.Background(), "Find me", false)

	result := exec(t, schema, `query ($id: UUID!) { todo(id: $id) { id title } }`,
		map[string]interface{}{"id": item.ID.String()})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	got := result.Data.(map[string]interface{})["todo"].(map[string]interface{})
	if got["id"] != item.ID.String() || got["title"] != "Find me" {
		t.Errorf("unexpected todo %v", got)
	}
}

func TestUpdateTodoMutation(t *testing.T) {
	schema, svc := setupTestSchema(t)

	item, _ := svc.Create(context.Background(), "Original", false)

	result := exec(t, schema, `
		mutation ($id: UUID!) {
			updateTodo(id: $id, input: {isCompleted: true}) {
				isCompleted
				completedAt
			}
		}`, map[string]interface{}{"id": item.ID.String()})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	updated := result.Data.(map[string]interface{})["updateTodo"].(map[string]interface{})
	if updated["isCompleted"] != true || updated["completedAt"] == nil {
		t.Errorf("expected completed with timestamp, got %v", updated)
	}
}

func TestUpdateTodoMutation_NotFoundCode(t *testing.T) {
	schema, _ := setupTestSchema(t)

	result := exec(t, schema, `
		mutation {
			updateTodo(id: "6a2f44b3-9a52-4d2e-bf01-1c6ad2c1a111", input: {title: "x"}) { id }
		}`, nil)
	if code := errorCode(result); code != "TODO_NOT_FOUND" {
		t.Fatalf("expected TODO_NOT_FOUND, got %q (errors: %v)", code, result.Errors)
	}
}

func TestDeleteTodoMutation(t *testing.T) {
	schema, svc := setupTestSchema(t)
	ctx := context.Background()

	item, _ := svc.Create(ctx, "Doomed", false)

	result := exec(t, schema, `mutation ($id: UUID!) { deleteTodo(id: $id) }`,
		map[string]interface{}{"id": item.ID.String()})
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Data.(map[string]interface{})["deleteTodo"] != true {
		t.Errorf("expected true, got %v", result.Data)
	}

	if _, err := svc.Get(ctx, item.ID); err == nil {
		t.Error("expected item to be deleted")
	}
}

func TestDeleteTodoMutation_NotFoundCode(t *testing.T) {
	schema, _ := setupTestSchema(t)

	result := exec(t, schema, `mutation { deleteTodo(id: "6a2f44b3-9a52-4d2e-bf01-1c6ad2c1a111") }`, nil)
	if code := errorCode(result); code != "TODO_NOT_FOUND" {
		t.Fatalf("expected TODO_NOT_FOUND, got %q (errors: %v)", code, result.Errors)
	}
}

func TestDeleteCompletedTodosMutation(t *testing.T) {
	schema, svc := setupTestSchema(t)
	ctx := context.Background()

	svc.Create(ctx, "keep", false)
	svc.Create(ctx, "done a", true)
	svc.Create(ctx, "done b", true)

	result := exec(t, schema, `mutation { deleteCompletedTodos }`, nil)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if count := result.Data.(map[string]interface{})["deleteCompletedTodos"]; count != 2 {
		t.Errorf("expected count 2, got %v", count)
	}

	result = exec(t, schema, `mutation { deleteCompletedTodos }`, nil)
	if count := result.Data.(map[string]interface{})["deleteCompletedTodos"]; count != 0 {
		t.Errorf("expected count 0 on second run, got %v", count)
	}
}
