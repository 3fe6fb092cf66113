package models

import (
	"testing"
)

func TestIsReservedUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     bool
	}{
		{
			name:     "canonical casing",
			username: "Admin",
			want:     true,
		},
		{
			name:     "lowercase",
			username: "admin",
			want:     true,
		},
		{
			name:     "uppercase",
			username: "ADMIN",
			want:     true,
		},
		{
			name:     "surrounding whitespace",
			username: "  admin  ",
			want:     true,
		},
		{
			name:     "regular player",
			username: "Aicha",
			want:     false,
		},
		{
			name:     "prefix only",
			username: "administrator",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReservedUsername(tt.username); got != tt.want {
				t.Errorf("IsReservedUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestUser_BeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "valid player",
			user:    User{Username: "Aicha", Role: RoleUser},
			wantErr: false,
		},
		{
			name:    "valid admin",
			user:    User{Username: "Admin", Role: RoleAdmin},
			wantErr: false,
		},
		{
			name:    "empty username",
			user:    User{Username: "   ", Role: RoleUser},
			wantErr: true,
		},
		{
			name:    "invalid role",
			user:    User{Username: "Aicha", Role: "SUPERUSER"},
			wantErr: true,
		},
		{
			name:    "reserved account demoted",
			user:    User{Username: "admin", Role: RoleUser},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
