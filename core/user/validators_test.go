package user

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/campushq/placetrack/core"
)

func TestNewUserPasswordPolicy(t *testing.T) {
	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "ab1", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "le secret", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "19941994", wantTag: pwdNotAllNumTag},
		{name: "similar to name", pwd: "janedoe1", wantTag: pwdAttrSimTag},
		{name: "similar to email", pwd: "jane@test.cd", wantTag: pwdAttrSimTag},
		{name: "acceptable", pwd: "S3kr3tW0rd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := NewUser{Name: "Jane Doe", Email: "jane@test.cd", Password: tt.pwd}
			err := core.Validate.Struct(nu)
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error = %v, want ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate() errors = %v, want tag %v", vErrs, tt.wantTag)
		})
	}
}
