package main

import (
	"context"
	"fmt"

	echoapi "github.com/trezcool/lms/apps/api/echo"
)

// token prints a bearer token for an existing user.
func (cli *commandLine) token(uname string) error {
	usr, err := cli.usrSvc.GetByUsername(context.Background(), uname)
	if err != nil {
		return err
	}
	ss, err := echoapi.GenerateToken(cli.conf, echoapi.GetUserClaims(cli.conf, usr))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.writer(), ss)
	return nil
}
