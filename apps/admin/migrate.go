package main

import "fmt"

func (cli *commandLine) runMigrations() error {
	if cli.migrate == nil {
		_, _ = fmt.Fprintf(cli.writer(), "nothing to migrate for the %q engine\n", cli.conf.Database.Engine)
		return nil
	}
	if err := cli.migrate(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.writer(), "database schema is up to date")
	return nil
}
