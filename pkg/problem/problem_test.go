package problem

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestProblem_Write(t *testing.T) {
	tests := []struct {
		name       string
		problem    *Problem
		wantStatus int
		wantType   string
	}{
		{"not found", NotFound("Entry not found"), 404, BaseURI + "/not-found"},
		{"bad request", BadRequest("Invalid date"), 400, BaseURI + "/bad-request"},
		{"conflict", Conflict("Entry exists"), 409, BaseURI + "/conflict"},
		{"internal", InternalError("boom"), 500, BaseURI + "/internal-error"},
		{"corrupt store", CorruptStore("history missing"), 503, BaseURI + "/corrupt-store"},
		{
			"validation",
			ValidationError("Invalid fields", []FieldError{{Field: "log_date", Message: "is required"}}),
			422, BaseURI + "/validation-error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.problem.Write(rec)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Content-Type"); got != ContentType {
				t.Errorf("Content-Type = %s, want %s", got, ContentType)
			}

			var decoded Problem
			if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if decoded.Type != tt.wantType {
				t.Errorf("type = %s, want %s", decoded.Type, tt.wantType)
			}
			if decoded.Status != tt.wantStatus {
				t.Errorf("body status = %d, want %d", decoded.Status, tt.wantStatus)
			}
		})
	}
}

func TestValidationError_FieldErrors(t *testing.T) {
	p := ValidationError("Invalid fields", []FieldError{
		{Field: "window_minutes", Message: "must be a multiple of 15"},
	})
	if len(p.Errors) != 1 || p.Errors[0].Field != "window_minutes" {
		t.Errorf("Errors = %+v, want one window_minutes error", p.Errors)
	}
}
