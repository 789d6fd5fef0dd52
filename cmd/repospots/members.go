package main

import (
	gocontext "context"
	"os"

	"github.com/iwata-n/repospots/lib/members"
)

type MembersCmd struct {
	Result string   `arg:"" optional:"" default:"result.json" help:"Stored report." type:"existingfile"`
	Member []string `sep:"none" help:"Member name. Can be repeated. Default is the members stored in the report."`
}

func (c *MembersCmd) Run(ctx *context) error {
	rows, err := ctx.ws.Members(gocontext.Background(), c.Result, c.Member)
	if err != nil {
		return err
	}

	return members.WriteCSV(os.Stdout, rows)
}
