package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/client"
	"github.com/justsurfingit/recruitment-tracker/internal/config"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
	"github.com/justsurfingit/recruitment-tracker/internal/portal"
	"github.com/justsurfingit/recruitment-tracker/internal/session"
)

const help = `Commands:
  role candidate|recruiter        choose who you are
  login <handle> <email> <name>   sign in as a candidate
  quick <1-3>                     sign in as a demo candidate
  upload                          attach a (simulated) CV
  apply <position #>              submit an application
  positions                       list open positions
  list                            show applications once
  watch                           refresh every 5s until Enter
  edit <id> <status> [notes]      recruiter: update an application (notes kept if omitted)
  logout | help | quit`

func main() {
	config.LoadDotEnv()
	cfg := config.LoadClient()

	sess, err := session.Load(session.NewFileStore(cfg.StatePath))
	if err != nil {
		log.Fatalf("Unable to read portal state %s: %v", cfg.StatePath, err)
	}
	api := client.New(cfg.APIURL, &http.Client{Timeout: 10 * time.Second})
	p := portal.New(api, sess)

	ctx := context.Background()
	if hello, err := api.Hello(ctx); err != nil {
		fmt.Println("Failed to connect to the backend. Make sure the API is running.")
	} else if hello != nil {
		fmt.Println(hello.Message)
	}

	r := &repl{portal: p, in: bufio.NewScanner(os.Stdin)}
	r.run(ctx)
}

type repl struct {
	portal *portal.Portal
	in     *bufio.Scanner
	cv     string
}

func (r *repl) run(ctx context.Context) {
	fmt.Println(help)
	for {
		fmt.Printf("[%s]> ", r.portal.State())
		if !r.in.Scan() {
			return
		}
		fields := strings.Fields(r.in.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := r.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Println("Error:", portal.ErrorMessage(err, err.Error()))
		}
	}
}

func (r *repl) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Println(help)
	case "role":
		if len(args) != 1 {
			return fmt.Errorf("usage: role candidate|recruiter")
		}
		role, err := session.ParseRole(args[0])
		if err != nil {
			return err
		}
		return r.portal.SelectRole(role)
	case "login":
		if len(args) < 3 {
			return fmt.Errorf("usage: login <handle> <email> <full name>")
		}
		return r.portal.Login(session.Profile{
			CandidateName: args[0],
			Email:         args[1],
			FullName:      strings.Join(args[2:], " "),
		})
	case "quick":
		if len(args) != 1 {
			return fmt.Errorf("usage: quick <1-3>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		return r.portal.QuickLogin(n)
	case "positions":
		for i, position := range portal.Positions {
			fmt.Printf("%2d. %s\n", i+1, position)
		}
	case "upload":
		cv, err := r.portal.SimulateUpload()
		if err != nil {
			return err
		}
		r.cv = cv
		fmt.Println("CV uploaded:", cv)
	case "apply":
		return r.apply(ctx, args)
	case "list":
		return r.list(ctx)
	case "watch":
		return r.watch(ctx)
	case "edit":
		return r.edit(ctx, args)
	case "logout":
		r.cv = ""
		return r.portal.Logout()
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (r *repl) apply(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: apply <position #>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(portal.Positions) {
		return fmt.Errorf("position must be a number between 1 and %d", len(portal.Positions))
	}
	app, err := r.portal.Submit(ctx, portal.Positions[n-1], r.cv)
	if err != nil {
		return fmt.Errorf("%s", portal.ErrorMessage(err, "Failed to submit application"))
	}
	r.cv = ""
	fmt.Printf("Application #%d submitted! Check \"list\" to see the status.\n", app.ID)
	return nil
}

func (r *repl) view() (*portal.ApplicationsView, bool, error) {
	if r.portal.State() == portal.Recruiter {
		v, err := r.portal.Queue()
		return v, true, err
	}
	v, err := r.portal.MyApplications()
	return v, false, err
}

func (r *repl) list(ctx context.Context) error {
	v, withCandidate, err := r.view()
	if err != nil {
		return err
	}
	if err := v.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", portal.ErrorMessage(err, "Failed to load applications"))
	}
	apps, _ := v.Snapshot()
	return portal.RenderApplications(os.Stdout, apps, withCandidate)
}

func (r *repl) watch(ctx context.Context) error {
	v, withCandidate, err := r.view()
	if err != nil {
		return err
	}
	v.OnChange(func() {
		apps, err := v.Snapshot()
		fmt.Printf("\n--- %s ---\n", time.Now().Format(time.Kitchen))
		if err != nil {
			fmt.Println(portal.ErrorMessage(err, "Failed to load applications"))
		}
		_ = portal.RenderApplications(os.Stdout, apps, withCandidate)
	})
	fmt.Println("Watching for changes, press Enter to stop.")
	v.Mount(ctx)
	r.in.Scan()
	v.Unmount()
	v.OnChange(nil)
	return nil
}

func (r *repl) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: edit <id> <status> [notes]")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	status, err := models.ParseStatus(args[1])
	if err != nil {
		return err
	}
	var notes *string
	if len(args) > 2 {
		n := strings.Join(args[2:], " ")
		notes = &n
	}
	app, err := r.portal.EditApplication(ctx, uint(id), status, notes)
	if err != nil {
		return fmt.Errorf("%s", portal.ErrorMessage(err, "Failed to update application"))
	}
	fmt.Printf("Application #%d is now %s.\n", app.ID, portal.StatusLabel(app.Status))
	return nil
}
