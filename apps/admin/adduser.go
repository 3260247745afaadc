package main

import (
	"context"
	"fmt"

	"github.com/trezcool/lms/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, uname, email, role string, isActive bool) error {
	usr, err := cli.usrSvc.Save(context.Background(), user.NewUser{
		Name:     name,
		Username: uname,
		Email:    email,
		Role:     role,
		IsActive: &isActive,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.writer(), "user %q saved (id=%d, role=%s, active=%t)\n", usr.Username, usr.ID, usr.Role, usr.IsActive)
	return nil
}
