// Headless driver for the affiliate platform client. Walks the app flows
// against a base URL, for dev/test/troubleshooting.
package main

import (
	"errors"
	"flag"
	"time"

	"github.com/apex/log"

	"afiliado/balance"
	"afiliado/client"
	"afiliado/config"
	"afiliado/directory"
	"afiliado/feed"
	"afiliado/referral"
	"afiliado/report"
	"afiliado/session"
)

var (
	phone    = flag.String("phone", "5512345678", "Phone number to log in with.")
	password = flag.String("password", "devpassword", "Password to log in with.")
	title    = flag.String("report_title", "Bache en la avenida", "Title of the sample report.")
	lat      = flag.String("lat", "19.4326", "Manual latitude for the sample report.")
	lng      = flag.String("lng", "-99.1332", "Manual longitude for the sample report.")
)

func doLogin(c *client.Client, store *session.TokenStore) *session.Session {
	token, err := c.Login(*phone, *password)
	if err != nil {
		log.Errorf("Login failed: %v", err)
		return nil
	}
	if err := store.Save(token); err != nil {
		log.Warnf("Could not persist token: %v", err)
	}

	sess, err := session.Parse(token)
	if err != nil {
		// Without a user and a party nothing else can run.
		log.Errorf("Session error: %v", err)
		return nil
	}
	log.Infof("Signed in as %s (user %d, party %d)", sess.FullName(), sess.UserID, sess.PartyID)
	return sess
}

func doFeed(c *client.Client, cfg *config.Config, sess *session.Session) {
	loader := feed.NewLoader(c.FetchFeedPage, cfg.PageSize)
	if err := loader.SetParty(sess.PartyID); err != nil {
		log.Errorf("Feed load failed: %v", err)
		return
	}
	log.Infof("Feed page %d of %d, %d posts", loader.Page(), loader.TotalPages(), len(loader.Posts()))

	if err := loader.Next(); err != nil {
		log.Errorf("Next page failed: %v", err)
		return
	}
	log.Infof("Feed page %d of %d, %d posts", loader.Page(), loader.TotalPages(), len(loader.Posts()))
}

func doReport(c *client.Client, sess *session.Session) {
	departments, err := c.FetchDepartments()
	if err != nil {
		log.Errorf("Departments fetch failed: %v", err)
		return
	}
	options := report.DepartmentOptions(departments)
	if len(options) == 0 {
		log.Warn("No departments available, skipping report")
		return
	}

	workflow := report.NewWorkflow(c, sess.UserID)
	workflow.SetDepartments(options)
	workflow.SetTitle(*title)
	workflow.SetDescription("Reportado desde el cliente de consola.")
	workflow.SetDepartment(options[0].Value)

	if err := workflow.AcquireLocation(report.ManualEntry{Latitude: *lat, Longitude: *lng}); err != nil {
		log.Errorf("Location entry rejected: %v", err)
		return
	}

	message, err := workflow.Submit()
	if err != nil {
		var v *report.ValidationError
		if errors.As(err, &v) {
			log.Errorf("Report incomplete: %v", v)
		} else {
			log.Errorf("Report submission failed: %v", err)
		}
		return
	}
	log.Infof("Report accepted: %s", message)

	history, err := c.FetchReports(sess.PartyID)
	if err != nil {
		log.Errorf("Report history fetch failed: %v", err)
		return
	}
	log.Infof("Party has %d reports on file", len(history))
}

func doBalance(c *client.Client, sess *session.Session) {
	summary, err := balance.Fetch(c, sess.UserID)
	if err != nil {
		log.Errorf("Balance fetch failed: %v", err)
		return
	}
	log.Infof("Plan %s expires in %d days", summary.Plan, summary.DaysLeft(time.Now()))
	for _, meter := range summary.Meters {
		log.Infof("  %s (%.0f%%)", meter, meter.Fraction()*100)
	}
}

func doInvitation(c *client.Client, sess *session.Session) {
	code, err := referral.Send(c, sess.UserID, referral.Invitation{
		Name:         "María López",
		Phone:        "5587654321",
		Neighborhood: "Centro",
	})
	if err != nil {
		log.Errorf("Invitation failed: %v", err)
		return
	}
	log.Infof("Invitation sent, code %s", code)
}

func doDirectory(c *client.Client, sess *session.Session) {
	entries, err := directory.Load(c, sess.PartyID)
	if err != nil {
		log.Errorf("Directory fetch failed: %v", err)
		return
	}
	for _, e := range entries {
		log.Infof("%s [%s] %s", e.Name, e.Category, e.Phone)
	}
}

func main() {
	flag.Parse()

	cfg := config.Load()
	c := client.New(cfg)
	log.Infof("Using API at %s", c.BaseURL())

	store := session.NewTokenStore(cfg.TokenPath)
	sess := doLogin(c, store)
	if sess == nil {
		return
	}

	doFeed(c, cfg, sess)
	doReport(c, sess)
	doBalance(c, sess)
	doInvitation(c, sess)
	doDirectory(c, sess)
}
