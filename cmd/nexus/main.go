// Command nexus is a command line client for a PharmaLytics Nexus server.
// It keeps a login session on disk, so authenticated commands work across
// invocations until logout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pharmalytics/nexus-go/internal/client"
	"github.com/pharmalytics/nexus-go/internal/model"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

func main() {
	baseURL := flag.String("server", envOr("NEXUS_SERVER", defaultBaseURL), "API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c, err := client.New(*baseURL)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, c, args[0], args[1:]); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "login":
		return cmdLogin(ctx, c, args)
	case "register":
		return cmdRegister(ctx, c, args)
	case "logout":
		return cmdLogout(c)
	case "whoami":
		return cmdWhoami(c)
	case "profile":
		return cmdProfile(ctx, c)
	case "drugs":
		return cmdDrugs(ctx, c, args)
	case "drug":
		return cmdDrug(ctx, c, args)
	case "search":
		return cmdSearch(ctx, c, args)
	case "check":
		return cmdCheck(ctx, c, args)
	case "history":
		return cmdHistory(ctx, c)
	case "analyze":
		return cmdAnalyze(ctx, c, args)
	case "dosage":
		return cmdDosage(ctx, c, args)
	case "side-effects":
		return cmdSideEffects(ctx, c, args)
	case "extract":
		return cmdExtract(ctx, c, args)
	case "imports":
		return cmdImports(ctx, c)
	case "import":
		return cmdImport(ctx, c, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdLogin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("login requires -username and -password")
	}

	user, err := c.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}

func cmdRegister(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "account role (default patient)")
	fs.Parse(args)

	if *username == "" || *email == "" || *password == "" {
		return errors.New("register requires -username, -email and -password")
	}

	user, err := c.Register(ctx, model.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}

func cmdLogout(c *client.Client) error {
	if err := c.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdWhoami(c *client.Client) error {
	user := c.User()
	if user == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Username, user.Role)
	return nil
}

func cmdProfile(ctx context.Context, c *client.Client) error {
	profile, err := c.GetProfile(ctx)
	if err != nil {
		return err
	}
	return printJSON(profile)
}

func cmdDrugs(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("drugs", flag.ExitOnError)
	search := fs.String("search", "", "filter by name or class")
	fs.Parse(args)

	drugs, err := c.ListDrugs(ctx, *search)
	if err != nil {
		return err
	}
	for _, d := range drugs {
		fmt.Printf("%-10s %-20s %s\n", d.DrugID, d.Name, d.DrugClass)
	}
	return nil
}

func cmdDrug(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: nexus drug <drug_id>")
	}

	drug, err := c.GetDrug(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(drug)
}

func cmdSearch(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: nexus search <query>")
	}

	resp, err := c.SearchMedications(ctx, args[0])
	if err != nil {
		return err
	}
	for _, hit := range resp.Results {
		fmt.Printf("%-10s %-20s %s\n", hit.DrugID, hit.Name, hit.GenericName)
	}
	return nil
}

func cmdCheck(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	meds := fs.String("meds", "", "comma separated medication names")
	age := fs.Int("age", -1, "patient age (optional)")
	fs.Parse(args)

	medications := parseMedications(*meds)
	if len(medications) == 0 {
		return errors.New("check requires -meds with at least two names")
	}

	var patientAge *int
	if *age >= 0 {
		patientAge = age
	}

	resp, err := c.CheckDrugInteractions(ctx, medications, patientAge)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdHistory(ctx context.Context, c *client.Client) error {
	checks, err := c.GetInteractionHistory(ctx)
	if err != nil {
		return err
	}
	return printJSON(checks)
}

func cmdAnalyze(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	meds := fs.String("meds", "", "comma separated medication names")
	age := fs.Int("age", -1, "patient age (optional)")
	fs.Parse(args)

	medications := parseMedications(*meds)
	if len(medications) == 0 {
		return errors.New("analyze requires -meds with at least two names")
	}

	req := model.AnalyzeInteractionRequest{Medications: medications}
	if *age >= 0 {
		req.PatientAge = age
	}

	resp, err := c.AnalyzeInteraction(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdDosage(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("dosage", flag.ExitOnError)
	drug := fs.String("drug", "", "drug name")
	age := fs.Int("age", 0, "patient age")
	weight := fs.Float64("weight", 0, "patient weight in kg (optional)")
	conditions := fs.String("conditions", "", "comma separated medical conditions")
	fs.Parse(args)

	if *drug == "" {
		return errors.New("dosage requires -drug")
	}

	req := model.DosageRequest{
		DrugName:          *drug,
		PatientAge:        *age,
		MedicalConditions: splitList(*conditions),
	}
	if *weight > 0 {
		req.PatientWeight = weight
	}

	resp, err := c.GetDosageRecommendation(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdSideEffects(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("side-effects", flag.ExitOnError)
	meds := fs.String("meds", "", "comma separated medication names")
	age := fs.Int("age", 0, "patient age")
	conditions := fs.String("conditions", "", "comma separated medical conditions")
	allergies := fs.String("allergies", "", "comma separated allergies")
	fs.Parse(args)

	medications := parseMedications(*meds)
	if len(medications) == 0 {
		return errors.New("side-effects requires -meds with at least one name")
	}

	resp, err := c.AnalyzeSideEffects(ctx, model.SideEffectRequest{
		Medications: medications,
		PatientProfile: model.PatientContext{
			Age:               *age,
			MedicalConditions: splitList(*conditions),
			Allergies:         splitList(*allergies),
		},
	})
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdExtract(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: nexus extract <text>")
	}

	resp, err := c.ExtractFromText(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdImports(ctx context.Context, c *client.Client) error {
	resp, err := c.GetImportStatus(ctx)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func cmdImport(ctx context.Context, c *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: nexus import <drugbank|fda|who|pharmgkb>")
	}

	resp, err := c.StartImport(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (import %s)\n", resp.Message, resp.ImportID)
	return nil
}

// parseMedications turns a comma separated name list into medication refs.
func parseMedications(s string) []model.MedicationRef {
	names := splitList(s)
	meds := make([]model.MedicationRef, 0, len(names))
	for _, name := range names {
		meds = append(meds, model.MedicationRef{Name: name})
	}
	return meds
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: nexus [flags] <command> [command flags]

Commands:
  login         -username -password
  register      -username -email -password [-role]
  logout
  whoami
  profile
  drugs         [-search term]
  drug          <drug_id>
  search        <query>
  check         -meds a,b[,c] [-age n]
  history
  analyze       -meds a,b[,c] [-age n]
  dosage        -drug name [-age n] [-weight kg] [-conditions x,y]
  side-effects  -meds a,b [-age n] [-conditions x,y] [-allergies x,y]
  extract       <text>
  imports
  import        <drugbank|fda|who|pharmgkb>

Flags:
`)
	flag.PrintDefaults()
}
