package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/pagination"
)

func TestJSON_EnvelopeWithoutPagination(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := JSON(c, http.StatusOK, map[string]int{"id": 1}, Success("ok")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := body["pagination"]; ok {
		t.Fatal("pagination must be omitted on single responses")
	}
	msgs := body["messages"].([]any)
	if len(msgs) != 1 || msgs[0].(map[string]any)["type"] != TypeSuccess {
		t.Fatalf("unexpected messages: %v", msgs)
	}
}

func TestJSON_EmptyMessagesIsArray(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	_ = JSON(c, http.StatusOK, nil)
	if got := rec.Body.String(); got != "{\"data\":null,\"messages\":[]}\n" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestPage_IncludesMetadata(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	p := pagination.New([]int{1, 2, 3, 4, 5}, 2, 2)
	if err := Page(c, http.StatusOK, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Data       []int      `json:"data"`
		Pagination Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Data) != 2 || body.Data[0] != 3 {
		t.Fatalf("unexpected window: %v", body.Data)
	}
	want := Pagination{TotalCount: 5, PageSize: 2, CurrentPage: 2, TotalPages: 3, HasNextPage: true, HasPreviousPage: true}
	if body.Pagination != want {
		t.Fatalf("pagination = %+v, want %+v", body.Pagination, want)
	}
}
