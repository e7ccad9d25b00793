package catalog_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/google/uuid"
)

func strp(s string) *string { return &s }

func TestCreateCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     catalog.CreateCommand
		wantErr bool
	}{
		{
			"valid movie",
			catalog.CreateCommand{Title: "Dune", Kind: catalog.KindMovie},
			false,
		},
		{
			"valid tv show with all fields",
			catalog.CreateCommand{
				Title:      "Chernobyl",
				Kind:       catalog.KindTVShow,
				Director:   "Johan Renck",
				Location:   "Lithuania",
				Duration:   "1 season",
				YearOrTime: "2019",
				Details:    "Miniseries",
			},
			false,
		},
		{"missing title", catalog.CreateCommand{Kind: catalog.KindMovie}, true},
		{"missing kind", catalog.CreateCommand{Title: "Dune"}, true},
		{"unknown kind", catalog.CreateCommand{Title: "Dune", Kind: "Documentary"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() error = nil, want error")
				}
				var verr *catalog.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Validate() error = %T, want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestUpdateCommand_Validate(t *testing.T) {
	badKind := catalog.Kind("Documentary")
	goodKind := catalog.KindTVShow

	tests := []struct {
		name    string
		cmd     catalog.UpdateCommand
		wantErr bool
	}{
		{"empty command valid", catalog.UpdateCommand{}, false},
		{"partial fields valid", catalog.UpdateCommand{Director: strp("Someone")}, false},
		{"valid kind", catalog.UpdateCommand{Kind: &goodKind}, false},
		{"unknown kind rejected", catalog.UpdateCommand{Kind: &badKind}, true},
		{"empty title rejected", catalog.UpdateCommand{Title: strp("")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestEntry_JSONShape(t *testing.T) {
	budget := 185000000.0
	e := catalog.Entry{
		ID:        uuid.New(),
		Title:     "The Dark Knight",
		Kind:      catalog.KindMovie,
		Budget:    &budget,
		ImagePath: "/uploads/tdk.jpg",
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(data)
	for _, field := range []string{`"id"`, `"title"`, `"type":"Movie"`, `"budget"`, `"image":"/uploads/tdk.jpg"`, `"createdAt"`} {
		if !strings.Contains(body, field) {
			t.Errorf("marshaled entry missing %s: %s", field, body)
		}
	}
	if strings.Contains(body, `"imagePath"`) {
		t.Errorf("marshaled entry uses struct field name instead of wire name: %s", body)
	}
}

func TestEntry_JSONOmitsEmptyImage(t *testing.T) {
	e := catalog.Entry{ID: uuid.New(), Title: "Dune", Kind: catalog.KindMovie}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if strings.Contains(string(data), `"image"`) {
		t.Errorf("empty image path should be omitted: %s", data)
	}
}
