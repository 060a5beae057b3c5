// Command eventctl is the terminal front end for the event-management
// client: it wires the gateway, stores, and QR card routine together and
// renders store snapshots. All state logic lives in the stores; commands
// here only dispatch operations and print.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/hohoindia/event-client/internal/core/ports"
	"github.com/hohoindia/event-client/internal/core/service"
	"github.com/hohoindia/event-client/internal/infrastructure/api"
	"github.com/hohoindia/event-client/internal/infrastructure/config"
	"github.com/hohoindia/event-client/internal/infrastructure/storage"
	"github.com/hohoindia/event-client/internal/qrcard"
	"github.com/hohoindia/event-client/pkg/logger"
)

const usage = `usage: eventctl <command> [flags]

Commands:
  signup      create an account
  login       authenticate and persist the session token
  logout      clear the session
  dashboard   list your events, classified upcoming/ended
  events      list public events (no session required)
  show        show one event and its registrations
  create      create an event (multipart, optional logo)
  update      update an event's fields
  delete      delete an event
  qr          compose the registration QR card (download or share)
  register    submit a public registration (no session required)
  export      download the registrations spreadsheet
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// .env is optional; real environment always wins.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "eventctl:", err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	tokens := storage.NewFileTokenStore(cfg.TokenPath)

	app := &app{cfg: cfg}
	client := api.NewClient(cfg.APIBaseURL, tokens, log,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithAuthExpiredHandler(func() { app.onAuthExpired() }),
	)

	app.auth = service.NewAuthStore(client, tokens, log)
	app.events = service.NewEventStore(client, log)
	app.regs = service.NewRegistrationStore(client, app.events, cfg.DownloadDir, log)
	app.sharer = qrcard.NewSharer(nil, cfg.DownloadDir, log)

	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "eventctl:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	auth   *service.AuthStore
	events *service.EventStore
	regs   *service.RegistrationStore
	sharer *qrcard.Sharer
}

// onAuthExpired is the top-level subscriber for the gateway's auth-expired
// signal: tear down the session and tell the user where to go next. The
// network layer itself never touches the terminal.
func (a *app) onAuthExpired() {
	a.auth.HandleAuthExpired()
	a.events.Reset()
	fmt.Fprintln(os.Stderr, "Your session has expired. Please run `eventctl login` again.")
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "signup":
		return a.cmdSignup(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.auth.Logout()
		fmt.Println("Logged out.")
		return nil
	case "dashboard":
		return a.cmdList(ctx, false)
	case "events":
		return a.cmdList(ctx, true)
	case "show":
		return a.cmdShow(ctx, args)
	case "create":
		return a.cmdCreate(ctx, args)
	case "update":
		return a.cmdUpdate(ctx, args)
	case "delete":
		return a.cmdDelete(ctx, args)
	case "qr":
		return a.cmdQR(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "export":
		return a.cmdExport(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	in := ports.SignupInput{}
	fs.StringVar(&in.Name, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Password, "password", "", "password")
	fs.StringVar(&in.Phone, "phone", "", "phone number")
	fs.StringVar(&in.Company, "company", "", "company")
	fs.StringVar(&in.Designation, "designation", "", "designation")
	fs.Parse(args)

	session, err := a.auth.Signup(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s. You are signed in.\n", session.User.Name)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	session, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	name := *email
	if session.User != nil && session.User.Name != "" {
		name = session.User.Name
	}
	fmt.Printf("Welcome back, %s.\n", name)
	return nil
}

func (a *app) cmdList(ctx context.Context, public bool) error {
	var err error
	if public {
		_, err = a.events.FetchAllPublic(ctx)
	} else {
		_, err = a.events.FetchAll(ctx)
	}
	if err != nil {
		return err
	}
	renderListing(os.Stdout, a.events.State(), time.Now())
	return nil
}

func (a *app) cmdShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	public := fs.Bool("public", false, "use the no-auth public endpoint")
	fs.Parse(args)
	id := fs.Arg(0)
	if id == "" {
		return fmt.Errorf("show: event id required")
	}

	// Detail and registrations are independent fetches resolving into
	// disjoint state slices; neither orders before the other.
	if *public {
		if _, err := a.events.FetchPublicOne(ctx, id); err != nil {
			return err
		}
	} else {
		if _, err := a.events.FetchOne(ctx, id); err != nil {
			return err
		}
		if _, err := a.events.FetchRegistrations(ctx, id); err != nil {
			return err
		}
	}
	renderDetail(os.Stdout, a.events.State(), time.Now())
	return nil
}

func (a *app) cmdCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	in := ports.CreateEventInput{}
	fs.StringVar(&in.Title, "title", "", "event title")
	fs.StringVar(&in.Description, "description", "", "event description")
	fs.StringVar(&in.Date, "date", "", "event date (RFC3339 or YYYY-MM-DD)")
	fs.StringVar(&in.Time, "time", "", "event time, e.g. 18:30")
	fs.StringVar(&in.Venue, "venue", "", "venue")
	fs.IntVar(&in.Capacity, "capacity", 0, "seat capacity")
	logoPath := fs.String("logo", "", "path to a logo image (optional)")
	fs.Parse(args)

	var logo *ports.LogoUpload
	if *logoPath != "" {
		f, err := os.Open(*logoPath)
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}
		defer f.Close()
		logo = &ports.LogoUpload{Filename: f.Name(), Content: f}
	}

	event, err := a.events.Create(ctx, in, logo)
	if err != nil {
		return err
	}
	fmt.Printf("Created %q (%s)\nRegistration URL: %s\n", event.Title, event.ID, event.RegistrationURL)
	return nil
}

func (a *app) cmdUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	date := fs.String("date", "", "new date")
	timeStr := fs.String("time", "", "new time")
	venue := fs.String("venue", "", "new venue")
	capacity := fs.Int("capacity", 0, "new capacity")
	fs.Parse(args)
	id := fs.Arg(0)
	if id == "" {
		return fmt.Errorf("update: event id required")
	}

	in := ports.UpdateEventInput{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			in.Title = title
		case "description":
			in.Description = description
		case "date":
			in.Date = date
		case "time":
			in.Time = timeStr
		case "venue":
			in.Venue = venue
		case "capacity":
			in.Capacity = capacity
		}
	})

	event, err := a.events.Update(ctx, id, in)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %q (%s)\n", event.Title, event.ID)
	return nil
}

func (a *app) cmdDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("delete: event id required")
	}
	if err := a.events.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func (a *app) cmdQR(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	share := fs.Bool("share", false, "share instead of plain download")
	fs.Parse(args)
	id := fs.Arg(0)
	if id == "" {
		return fmt.Errorf("qr: event id required")
	}

	event, err := a.events.FetchOne(ctx, id)
	if err != nil {
		return err
	}
	code, err := qrcard.RegistrationCode(event.RegistrationURL)
	if err != nil {
		return err
	}
	card, err := qrcard.Compose(*event, code)
	if err != nil {
		return err
	}

	if *share {
		outcome, err := a.sharer.Share(ctx, *event, card)
		if err != nil {
			return err
		}
		switch {
		case outcome.Shared:
			fmt.Println("Shared.")
		case outcome.URLCopied:
			fmt.Printf("Registration URL copied to clipboard; card saved to %s\n", outcome.DownloadPath)
		default:
			fmt.Printf("Card saved to %s\n", outcome.DownloadPath)
		}
		return nil
	}

	path, err := a.sharer.Download(*event, card)
	if err != nil {
		return err
	}
	fmt.Printf("Card saved to %s\n", path)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	in := ports.RegistrationInput{}
	fs.StringVar(&in.Name, "name", "", "attendee name")
	fs.StringVar(&in.Email, "email", "", "attendee email")
	fs.StringVar(&in.Phone, "phone", "", "attendee phone")
	fs.Parse(args)
	eventID := fs.Arg(0)
	if eventID == "" {
		return fmt.Errorf("register: event id required")
	}

	event, err := a.events.FetchPublicOne(ctx, eventID)
	if err != nil {
		return err
	}

	a.regs.SetForm(in)
	if _, err := a.regs.Submit(ctx, eventID); err != nil {
		return err
	}
	fmt.Printf("You're registered for %q. See you there!\n", event.Title)
	return nil
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("export: event id required")
	}
	path, err := a.regs.Export(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Registrations saved to %s\n", path)
	return nil
}
