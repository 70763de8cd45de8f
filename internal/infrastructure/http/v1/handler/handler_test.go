package handler

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewHandlerRegistersURLTemplateValidation(t *testing.T) {
	v := validator.New()
	if _, err := NewHandler(v, nil, nil); err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	tests := []struct {
		name     string
		template string
		wantErr  bool
	}{
		{name: "valid", template: "https://tiles.test/{z}/{x}/{y}.pbf", wantErr: false},
		{name: "missing placeholder", template: "https://tiles.test/{z}/{x}.pbf", wantErr: true},
		{name: "not http", template: "ftp://tiles.test/{z}/{x}/{y}.pbf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.template, "url_template")
			if (err != nil) != tt.wantErr {
				t.Errorf("Var(%q) err = %v, wantErr %v", tt.template, err, tt.wantErr)
			}
		})
	}
}
