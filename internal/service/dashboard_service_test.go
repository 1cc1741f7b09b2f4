package service_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newsroom-web/internal/models"
)

const validRecord = `{"id":"%s","title":"%s","author":"Desk","category":"science","content":"a b c","status":"published","publishDate":"2024-03-01T10:00:00Z"}`

func TestImportArticles_ContinueOnError(t *testing.T) {
	h := newTestHarness(t)

	lines := []string{
		fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a01", "First Story"),
		`{"title": broken`,
		`{"title":"No Category","author":"Desk"}`,
		"",
		fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a02", "Second Story"),
		`{"title":"Draft With Date","author":"Desk","category":"world","status":"draft","publishDate":"2024-03-01T10:00:00Z"}`,
		fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a01", "Duplicate Id"),
	}

	result, err := h.services.Dashboard.ImportArticles(context.Background(), strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("ImportArticles returned error: %v", err)
	}

	if result.Total != 6 {
		t.Errorf("Expected 6 records (blank line skipped), got %d", result.Total)
	}
	if result.Successful != 2 {
		t.Errorf("Expected 2 successful, got %d", result.Successful)
	}
	if result.Successful+result.Failed != result.Total {
		t.Errorf("Successful(%d) + Failed(%d) != Total(%d)", result.Successful, result.Failed, result.Total)
	}
	if len(h.articleRepo.Articles) != 2 {
		t.Errorf("Expected 2 stored articles, got %d", len(h.articleRepo.Articles))
	}

	byLine := make(map[int][]string)
	for _, e := range result.Errors {
		byLine[e.Line] = append(byLine[e.Line], e.Field)
	}
	expected := map[int]string{2: "json", 3: "category", 6: "publishDate", 7: "id"}
	for line, field := range expected {
		found := false
		for _, f := range byLine[line] {
			if f == field {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected %s error on line %d, got %v", field, line, byLine[line])
		}
	}
}

func TestImportArticles_DerivedFields(t *testing.T) {
	h := newTestHarness(t)

	record := `{"title":"Deep Sea Mapping","author":"Desk","category":"science","content":"` + strings.Repeat("word ", 450) + `"}`
	result, err := h.services.Dashboard.ImportArticles(context.Background(), strings.NewReader(record))
	if err != nil {
		t.Fatalf("ImportArticles returned error: %v", err)
	}
	if result.Successful != 1 {
		t.Fatalf("Expected 1 successful, got %d (errors: %+v)", result.Successful, result.Errors)
	}

	var stored *models.Article
	for _, a := range h.articleRepo.Articles {
		stored = a
	}
	if stored.ID == "" {
		t.Error("Expected generated ID")
	}
	if stored.Slug != "deep-sea-mapping" {
		t.Errorf("Expected derived slug, got %q", stored.Slug)
	}
	if stored.Status != models.ArticleStatusDraft {
		t.Errorf("Expected default status draft, got %s", stored.Status)
	}
	if stored.WordCount != 450 || stored.ReadTime != "3 min read" {
		t.Errorf("Expected 450 words / 3 min read, got %d / %q", stored.WordCount, stored.ReadTime)
	}
}

func TestImportArticles_BatchInsertError(t *testing.T) {
	h := newTestHarness(t)
	h.articleRepo.InsertError = errors.New("connection reset")

	input := fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a01", "First Story")
	result, err := h.services.Dashboard.ImportArticles(context.Background(), strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportArticles returned error: %v", err)
	}
	if result.Failed != 1 || result.Successful != 0 {
		t.Errorf("Expected the failed batch to be counted, got %+v", result)
	}
}

func TestImportArticles_ErrorCap(t *testing.T) {
	h := newTestHarness(t)

	var buf bytes.Buffer
	for i := 0; i < models.MaxReportedImportErrors+50; i++ {
		buf.WriteString("not json\n")
	}

	result, err := h.services.Dashboard.ImportArticles(context.Background(), &buf)
	if err != nil {
		t.Fatalf("ImportArticles returned error: %v", err)
	}
	if result.Failed != models.MaxReportedImportErrors+50 {
		t.Errorf("Expected every line to fail, got %d", result.Failed)
	}
	if len(result.Errors) != models.MaxReportedImportErrors {
		t.Errorf("Expected %d reported errors, got %d", models.MaxReportedImportErrors, len(result.Errors))
	}
}

func TestStreamArticles_NDJSON(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "a1", "world", models.ArticleStatusPublished, date(1))
	seedArticle(h, "a2", "world", models.ArticleStatusDraft, nil)

	w := httptest.NewRecorder()
	if err := h.services.Dashboard.StreamArticles(context.Background(), w, "ndjson"); err != nil {
		t.Fatalf("StreamArticles failed: %v", err)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("Expected ndjson content type, got %s", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		var a models.Article
		if err := json.Unmarshal([]byte(line), &a); err != nil {
			t.Errorf("Line is not valid JSON: %v", err)
		}
	}
}

func TestStreamArticles_JSON(t *testing.T) {
	h := newTestHarness(t)
	seedArticle(h, "a1", "world", models.ArticleStatusPublished, date(1))
	seedArticle(h, "a2", "world", models.ArticleStatusDraft, nil)

	w := httptest.NewRecorder()
	if err := h.services.Dashboard.StreamArticles(context.Background(), w, "json"); err != nil {
		t.Fatalf("StreamArticles failed: %v", err)
	}

	var articles []models.Article
	if err := json.Unmarshal(w.Body.Bytes(), &articles); err != nil {
		t.Fatalf("Expected a JSON array: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("Expected 2 articles, got %d", len(articles))
	}

	if err := h.services.Dashboard.StreamArticles(context.Background(), httptest.NewRecorder(), "csv"); err == nil {
		t.Error("Expected unsupported format error")
	}
}

func TestImportArticles_StopsEarlyWithPartialResult(t *testing.T) {
	h := newTestHarness(t)

	input := fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a01", "First Story") + "\n" +
		fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a02", "Second Story") + "\n" +
		strings.Repeat("x", 2*1024*1024) + "\n" +
		fmt.Sprintf(validRecord, "0b6f8a52-6c64-4c59-9e84-8a1b1c1b2a03", "Never Read") + "\n"

	result, err := h.services.Dashboard.ImportArticles(context.Background(), strings.NewReader(input))
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("Expected bufio.ErrTooLong, got %v", err)
	}
	if result == nil {
		t.Fatal("Expected partial result alongside the error")
	}
	if result.Successful != 2 {
		t.Errorf("Expected 2 stored before the failure, got %d", result.Successful)
	}
	if len(h.articleRepo.Articles) != 2 {
		t.Errorf("Expected 2 stored articles, got %d", len(h.articleRepo.Articles))
	}
}
