package main

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/lms/apps/api/echo"
	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/storage/database/dummy"
	"github.com/trezcool/lms/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	// set up DB & repos
	db, _ := dummydb.Open()
	usrRepo = dummydb.NewUserRepository(db)

	translator := core.NewTranslator()
	validate := core.NewValidate(translator)
	user.InitValidators(validate, translator)

	// start CLI
	out := new(bytes.Buffer)
	return &commandLine{
		conf:   testutil.NewConfig(),
		usrSvc: user.NewService(usrRepo, validate),
		out:    out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func checkRunErr(t *testing.T, tt cliTest, err error) {
	if err == nil {
		if tt.wantErr != nil || tt.wantErrStr != "" {
			t.Errorf("cli.run() error = nil, wantErr %v%s", tt.wantErr, tt.wantErrStr)
		}
		return
	}
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if !strings.Contains(err.Error(), tt.wantErrStr) {
			t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
		}
	default:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "email missing", args: []string{"adduser", "-username", "hero"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-username", "Hero", "-email", "hero@test.cd", "-name", "Hero"}},
		{name: "update role", args: []string{"adduser", "-username", "hero", "-email", "hero@test.cd", "-role", "teacher"}},
		{name: "email taken", args: []string{"adduser", "-username", "other", "-email", "HERO@test.cd"}, wantErrStr: user.ErrEmailExists.Error()},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			checkRunErr(t, tt, cli.run(args))
		})
	}

	usr, err := usrRepo.GetUserByUsername(context.Background(), "hero")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if usr.Role != string(core.RoleTeacher) || !usr.IsActive || usr.Email != "hero@test.cd" {
		t.Errorf("saved user = %+v", usr)
	}

	t.Run("invalid role", func(t *testing.T) {
		err := cli.run([]string{"admin", "adduser", "-username", "bad", "-email", "bad@test.cd", "-role", "guest"})
		var vErrs validator.ValidationErrors
		if !errors.As(err, &vErrs) || vErrs[0].Tag() != "role" {
			t.Errorf("cli.run() error = %v, want role validation error", err)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		if err := cli.run([]string{"admin", "adduser", "-username", "naughty", "-email", "n@test.cd", "-inactive"}); err != nil {
			t.Fatalf("cli.run() error = %v", err)
		}
		usr, _ := usrRepo.GetUserByUsername(context.Background(), "naughty")
		if usr.IsActive || usr.Role != string(core.RoleStudent) {
			t.Errorf("saved user = %+v", usr)
		}
	})
}

func Test_commandLine_token(t *testing.T) {
	cli, out := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "Admin", "admin", core.RoleAdmin, true)

	tests := []cliTest{
		{name: "no args", args: []string{"token"}, wantErr: errHelp},
		{name: "user not found", args: []string{"token", "-username", "lol"}, wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			checkRunErr(t, tt, cli.run(args))
		})
	}

	t.Run("signed token", func(t *testing.T) {
		out.Reset()
		if err := cli.run([]string{"admin", "token", "-username", "ADMIN"}); err != nil {
			t.Fatalf("cli.run() error = %v", err)
		}

		claims := new(echoapi.Claims)
		_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cli.conf.SecretKey), nil
		})
		if err != nil {
			t.Fatalf("jwt.ParseWithClaims() error = %v", err)
		}
		if claims.Subject != strconv.Itoa(usr.ID) || claims.Username != usr.Username {
			t.Errorf("claims = %+v", claims)
		}
	})
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t)

	t.Run("no schema", func(t *testing.T) {
		if err := cli.run([]string{"admin", "migrate"}); err != nil {
			t.Fatalf("cli.run() error = %v", err)
		}
		if !strings.Contains(out.String(), "nothing to migrate") {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("migrated", func(t *testing.T) {
		var called bool
		cli.migrate = func() error { called = true; return nil }
		if err := cli.run([]string{"admin", "migrate"}); err != nil || !called {
			t.Errorf("cli.run() error = %v, called %v", err, called)
		}
	})

	t.Run("failure", func(t *testing.T) {
		errBoom := errors.New("boom")
		cli.migrate = func() error { return errBoom }
		checkRunErr(t, cliTest{wantErr: errBoom}, cli.run([]string{"admin", "migrate"}))
	})
}
