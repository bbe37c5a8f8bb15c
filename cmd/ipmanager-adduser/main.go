// Command ipmanager-adduser заводит учётную запись в БД ipmanager.
//
//	ipmanager-adduser --username NAME [--admin] [--config FILE] [--password-stdin]
//	ipmanager-adduser --list
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ipmanager/config"
	"ipmanager/internal/auth"
	"ipmanager/internal/db"
	"ipmanager/internal/logs"
	"ipmanager/internal/repo"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// readPassword подменяется в тестах, чтобы не трогать терминал.
var readPassword = term.ReadPassword

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("ipmanager-adduser", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("username", "", "login of the new user")
	admin := fs.Bool("admin", false, "grant admin rights")
	cfgPath := fs.String("config", os.Getenv("IPMANAGER_CONFIG"), "path to config file")
	fromStdin := fs.Bool("password-stdin", false, "read password from the first line of stdin")
	list := fs.Bool("list", false, "list existing users and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// auth.secret не нужен: токены здесь не выдаются
	cfg, err := config.Read(*cfgPath)
	if err == nil {
		err = cfg.ValidateStorage()
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	logs.Init(logs.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	g, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		fmt.Fprintf(stderr, "db open: %v\n", err)
		return 1
	}
	if sqlDB, err := g.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := db.Migrate(g); err != nil {
		fmt.Fprintf(stderr, "db migrate: %v\n", err)
		return 1
	}
	store := repo.NewUserStore(g)
	ctx := context.Background()

	if *list {
		users, err := store.List(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "list users: %v\n", err)
			return 1
		}
		for _, u := range users {
			role := "user"
			if u.IsAdmin {
				role = "admin"
			}
			fmt.Fprintf(stdout, "%d\t%s\t%s\n", u.ID, u.Username, role)
		}
		return 0
	}

	if strings.TrimSpace(*username) == "" {
		fmt.Fprintln(stderr, "--username is required")
		fs.PrintDefaults()
		return 2
	}

	var pw []byte
	if *fromStdin {
		pw, err = readLine(stdin)
	} else {
		pw, err = promptPassword(stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "read password: %v\n", err)
		return 1
	}
	if len(pw) == 0 {
		fmt.Fprintln(stderr, "password must not be empty")
		return 1
	}

	hash, err := auth.NewHasher(cfg.Auth.BcryptCost).Hash(pw)
	if err != nil {
		fmt.Fprintf(stderr, "hash password: %v\n", err)
		return 1
	}
	u, err := store.Create(ctx, *username, hash, *admin)
	if errors.Is(err, repo.ErrUserExists) {
		fmt.Fprintf(stderr, "user %q already exists\n", strings.TrimSpace(*username))
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "create user: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "created user %q (id=%d, admin=%t)\n", u.Username, u.ID, u.IsAdmin)
	return 0
}

func readLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func promptPassword(w io.Writer) ([]byte, error) {
	fmt.Fprint(w, "Password: ")
	first, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(w, "Repeat password: ")
	second, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	if string(first) != string(second) {
		return nil, errors.New("passwords do not match")
	}
	return first, nil
}
