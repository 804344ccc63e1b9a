package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	coremetrics "github.com/sajals2410/elyx-assignment/core/metrics"
	"github.com/sajals2410/elyx-assignment/core/model"
)

func newWriteServer(t *testing.T, body *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestInfluxSink_RecordPlacement(t *testing.T) {
	var body string
	srv := newWriteServer(t, &body)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()

	rec := coremetrics.PlacementRecord{
		Date:       time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		ActivityID: "morning-walk",
		Type:       model.TypeFitness,
		Priority:   model.PriorityMedium,
		Start:      420,
		End:        450,
	}
	if err := sink.RecordPlacement(rec); err != nil {
		t.Fatalf("record: %v", err)
	}
	for _, want := range []string{
		"placement", "activity_id=morning-walk", "activity_type=fitness",
		"priority=medium", "start_minute=420i", "duration_minutes=30i", "is_backup=false",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("line protocol missing %q: %s", want, body)
		}
	}
}

func TestInfluxSink_RecordConflict(t *testing.T) {
	var body string
	srv := newWriteServer(t, &body)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()

	rec := coremetrics.ConflictRecord{
		Date:       time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		ActivityID: "swim",
		Reason:     "no-slot",
	}
	if err := sink.RecordConflict(rec); err != nil {
		t.Fatalf("record: %v", err)
	}
	for _, want := range []string{"conflict", "activity_id=swim", "reason=no-slot"} {
		if !strings.Contains(body, want) {
			t.Fatalf("line protocol missing %q: %s", want, body)
		}
	}
}

func TestNewInfluxSinkWithFallback_Unreachable(t *testing.T) {
	sink := NewInfluxSinkWithFallback("http://127.0.0.1:1", "", "", "")
	if _, ok := sink.(coremetrics.NopSink); !ok {
		t.Fatalf("unreachable instance must fall back to NopSink, got %T", sink)
	}
}
