package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cucumber/godog"

	gormstore "gatehouse/pkg/server/store/gorm"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	client       *http.Client
	response     *http.Response
	responseBody string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		client: tc.NewClient(),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a Gatehouse server is running$`, s.aGatehouseServerIsRunning)
	sc.Step(`^an account "([^"]*)" with password "([^"]*)" and role "([^"]*)" exists$`, s.anAccountWithRoleExists)

	sc.Step(`^I sign in as "([^"]*)" with password "([^"]*)"$`, s.iSignInAs)
	sc.Step(`^I sign in as "([^"]*)" with password "([^"]*)" (\d+) times$`, s.iSignInAsNTimes)
	sc.Step(`^I wait for the lockout to expire$`, s.iWaitForTheLockoutToExpire)
	sc.Step(`^I visit "([^"]*)"$`, s.iVisit)

	sc.Step(`^I should land on "([^"]*)"$`, s.iShouldLandOn)
	sc.Step(`^the page should contain "([^"]*)"$`, s.thePageShouldContain)
	sc.Step(`^the page should not contain "([^"]*)"$`, s.thePageShouldNotContain)
}

func (s *StepsContext) aGatehouseServerIsRunning() error {
	resp, err := s.client.Get(s.tc.ServerURL + "/login")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expected 200 from /login, got %d", resp.StatusCode)
	}
	return nil
}

func (s *StepsContext) anAccountWithRoleExists(name, password, roleName string) error {
	roles := gormstore.NewRolesStore(s.tc.DB)
	all, err := roles.ListRoles()
	if err != nil {
		return err
	}

	var roleID uint
	for _, role := range all {
		if role.Name == roleName {
			roleID = role.ID
			break
		}
	}
	if roleID == 0 {
		return fmt.Errorf("role %q not found", roleName)
	}

	accounts := gormstore.NewAccountsStore(s.tc.DB)
	if existing, err := accounts.FetchAccountByName(name); err == nil {
		return accounts.ReplaceRoles(existing.ID, []uint{roleID})
	}

	_, err = accounts.CreateAccount(name, password, []uint{roleID})
	return err
}

func (s *StepsContext) record(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return err
	}
	s.response = resp
	s.responseBody = string(body)
	return nil
}

func (s *StepsContext) iSignInAs(name, password string) error {
	form := url.Values{"username": {name}, "password": {password}}
	resp, err := s.client.PostForm(s.tc.ServerURL+"/login", form)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) iSignInAsNTimes(name, password string, times int) error {
	for i := 0; i < times; i++ {
		if err := s.iSignInAs(name, password); err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) iWaitForTheLockoutToExpire() error {
	time.Sleep(testLockoutPolicy.Duration + 500*time.Millisecond)
	return nil
}

func (s *StepsContext) iVisit(path string) error {
	resp, err := s.client.Get(s.tc.ServerURL + path)
	if err != nil {
		return err
	}
	return s.record(resp)
}

func (s *StepsContext) iShouldLandOn(path string) error {
	if s.response == nil {
		return fmt.Errorf("no response recorded")
	}
	// The client follows redirects, so the final request URL is where
	// the flow landed.
	got := s.response.Request.URL.Path
	if got != path {
		return fmt.Errorf("landed on %q, expected %q", got, path)
	}
	return nil
}

func (s *StepsContext) thePageShouldContain(text string) error {
	if !strings.Contains(s.responseBody, text) {
		return fmt.Errorf("page does not contain %q", text)
	}
	return nil
}

func (s *StepsContext) thePageShouldNotContain(text string) error {
	if strings.Contains(s.responseBody, text) {
		return fmt.Errorf("page unexpectedly contains %q", text)
	}
	return nil
}
