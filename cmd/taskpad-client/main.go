// Command taskpad-client is a small CLI that drives the taskpad API
// through pkg/client: register, log in, and manage the logged-in user's
// tasks from the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"git.sr.ht/~jakintosh/taskpad/pkg/client"
)

func main() {
	server := flag.String("server", "http://localhost:4000", "taskpad server base URL")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	name := flag.String("name", "", "display name (register only)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}
	if *email == "" || *password == "" {
		log.Fatalln("both -email and -password are required")
	}

	c := client.New(*server)

	if args[0] == "register" {
		if *name == "" {
			log.Fatalln("-name is required to register")
		}
		user, err := c.Register(*name, *email, *password)
		if err != nil {
			log.Fatalf("register failed: %v\n", err)
		}
		fmt.Printf("registered user %d (%s)\n", user.ID, user.Email)
		return
	}

	if err := c.Login(*email, *password); err != nil {
		log.Fatalf("login failed: %v\n", err)
	}

	if err := run(c, args); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			log.Fatalln("session rejected; log in again")
		}
		log.Fatalf("%v\n", err)
	}
}

func run(c *client.Client, args []string) error {
	switch args[0] {

	case "list":
		tasks, err := c.Tasks()
		if err != nil {
			return err
		}
		for _, task := range tasks {
			mark := " "
			if task.Completed {
				mark = "x"
			}
			fmt.Printf("[%s] %d  %s\n", mark, task.ID, task.Text)
		}
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add <text>")
		}
		task, err := c.AddTask(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("added task %d\n", task.ID)
		return nil

	case "toggle":
		id, completed, err := parseToggle(args)
		if err != nil {
			return err
		}
		if _, err := c.SetCompleted(id, completed); err != nil {
			return err
		}
		return nil

	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: delete <id>")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad task id '%s'", args[1])
		}
		return c.DeleteTask(id)

	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: search <query>")
		}
		tasks, err := c.Search(args[1])
		if err != nil {
			return err
		}
		for _, task := range tasks {
			fmt.Printf("%d  %s\n", task.ID, task.Text)
		}
		return nil

	case "complete-all":
		return c.CompleteAll()

	case "delete-all":
		return c.DeleteAll()

	default:
		usage()
		return nil
	}
}

func parseToggle(args []string) (int64, bool, error) {
	if len(args) < 3 {
		return 0, false, fmt.Errorf("usage: toggle <id> <true|false>")
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("bad task id '%s'", args[1])
	}
	completed, err := strconv.ParseBool(args[2])
	if err != nil {
		return 0, false, fmt.Errorf("bad completed flag '%s'", args[2])
	}
	return id, completed, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: taskpad-client [flags] <command>

commands:
  register              create an account (-name required)
  list                  list the logged-in user's tasks
  add <text>            add a task
  toggle <id> <bool>    set a task's completed flag
  delete <id>           delete a task
  search <query>        search task text
  complete-all          mark every task complete
  delete-all            delete every task`)
	os.Exit(2)
}
