// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

// Command userctl is a small command-line client for the user service.
//
// Usage:
//
//	userctl [-s http://localhost:8080] <command> [arguments]
//
// Commands:
//
//	list     [-page N] [-per-page N] [-active true|false] [-min-age N] [-max-age N]
//	get      <id>
//	create   -username U -email E -first-name F -last-name L [-age N]
//	update   <id> [-username U] [-email E] [-first-name F] [-last-name L] [-age N]
//	delete   <id>
//	restore  <id>
//	version
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dkotelnikov/user-service/internal/adapter"
	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/models"
)

const requestTimeout = 15 * time.Second

func main() {
	serverURL := flag.String("s", "http://localhost:8080", "user service base URL")
	flag.Parse()

	log := logger.NewFileLogger("userctl", "userctl.log")

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: userctl [-s url] <list|get|create|update|delete|restore|version> [arguments]")
		os.Exit(2)
	}

	api := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: *serverURL,
		Timeout: requestTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if err := run(ctx, api, command, args); err != nil {
		log.Error().Err(err).Str("command", command).Msg("command failed")
		fmt.Fprintf(os.Stderr, "userctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "list":
		return runList(ctx, api, args)
	case "get":
		return runGet(ctx, api, args)
	case "create":
		return runCreate(ctx, api, args)
	case "update":
		return runUpdate(ctx, api, args)
	case "delete":
		return runDelete(ctx, api, args)
	case "restore":
		return runRestore(ctx, api, args)
	case "version":
		return runVersion(ctx, api)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func runList(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 0, "page number")
	perPage := fs.Int("per-page", 0, "records per page")
	active := fs.String("active", "", "filter by active state (true|false)")
	minAge := fs.Int("min-age", -1, "minimum age")
	maxAge := fs.Int("max-age", -1, "maximum age")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := models.ListUsersRequest{Page: *page, PerPage: *perPage}
	if *active != "" {
		isActive := *active == "true"
		req.Filter.IsActive = &isActive
	}
	if *minAge >= 0 {
		req.Filter.MinAge = minAge
	}
	if *maxAge >= 0 {
		req.Filter.MaxAge = maxAge
	}

	list, err := api.ListUsers(ctx, req)
	if err != nil {
		return err
	}

	return printJSON(list)
}

func runGet(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}

	user, err := api.GetUser(ctx, id)
	if err != nil {
		return err
	}

	return printJSON(user)
}

func runCreate(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	username := fs.String("username", "", "unique username")
	email := fs.String("email", "", "unique email address")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	age := fs.Int("age", -1, "age in years")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user := models.User{
		Username:  *username,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
	}
	if *age >= 0 {
		user.Age = age
	}

	created, err := api.CreateUser(ctx, user)
	if err != nil {
		return err
	}

	return printJSON(created)
}

func runUpdate(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ExitOnError)
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email address")
	firstName := fs.String("first-name", "", "new first name")
	lastName := fs.String("last-name", "", "new last name")
	age := fs.Int("age", -1, "new age in years")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	var update models.UserUpdate
	if *username != "" {
		update.Username = username
	}
	if *email != "" {
		update.Email = email
	}
	if *firstName != "" {
		update.FirstName = firstName
	}
	if *lastName != "" {
		update.LastName = lastName
	}
	if *age >= 0 {
		update.Age = age
	}

	updated, err := api.UpdateUser(ctx, id, update)
	if err != nil {
		return err
	}

	return printJSON(updated)
}

func runDelete(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}

	if err := api.DeleteUser(ctx, id); err != nil {
		return err
	}

	fmt.Println("user deleted")
	return nil
}

func runRestore(ctx context.Context, api adapter.ServerAdapter, args []string) error {
	id, err := requireID(args)
	if err != nil {
		return err
	}

	restored, err := api.RestoreUser(ctx, id)
	if err != nil {
		return err
	}

	return printJSON(restored)
}

func runVersion(ctx context.Context, api adapter.ServerAdapter) error {
	version, err := api.GetServerVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Println(version)
	return nil
}

func requireID(args []string) (string, error) {
	if len(args) < 1 || args[0] == "" {
		return "", fmt.Errorf("user id argument is required")
	}
	return args[0], nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
