package auth

import (
	"log"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"colvote.com/internal/model"
)

// InitCasbin builds the RBAC enforcer backed by the GORM adapter and seeds the
// default role policies when the policy table is empty.
func InitCasbin(db *gorm.DB) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}

	// r = request (role, path, method)
	// p = policy
	// keyMatch2 matches route parameters like /campaigns/:id/close
	text := `
		[request_definition]
		r = sub, obj, act

		[policy_definition]
		p = sub, obj, act

		[role_definition]
		g = _, _

		[policy_effect]
		e = some(where (p.eft == allow))

		[matchers]
		m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
	`

	m, err := casbinmodel.NewModelFromString(text)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	policies, _ := enforcer.GetPolicy()
	if len(policies) == 0 {
		log.Println("Casbin: No policies found, seeding default role policies...")
		if err := seedPolicies(enforcer); err != nil {
			return nil, err
		}
	}

	log.Println("Casbin initialized successfully")
	return enforcer, nil
}

// seedPolicies installs the default admin/voter route permissions.
func seedPolicies(enforcer *casbin.Enforcer) error {
	admin := string(model.RoleAdmin)
	voter := string(model.RoleVoter)

	policies := [][]string{
		// Campaign and candidate management
		{admin, "/campaigns", "POST"},
		{admin, "/campaigns/:id/status", "PATCH"},
		{admin, "/campaigns/:id/close", "POST"},
		{admin, "/candidates", "(GET)|(POST)"},
		{admin, "/candidates/:id", "DELETE"},
		{admin, "/candidates/campaign/:campaignId", "GET"},

		// Electoral roll management
		{admin, "/users", "GET"},
		{admin, "/users/:id", "(GET)|(PUT)|(DELETE)"},

		// Voting
		{voter, "/votes", "POST"},
		{voter, "/voters/campaigns", "GET"},
		{voter, "/voters/votes", "GET"},
		{voter, "/users/:id", "(GET)|(PUT)"}, // self-only, enforced in the handler

		// Session endpoints for both roles
		{admin, "/auth/me", "GET"},
		{voter, "/auth/me", "GET"},
		{admin, "/auth/logout", "POST"},
		{voter, "/auth/logout", "POST"},
	}

	// One batch insert; autosave persists it through the adapter. A trailing
	// SavePolicy would truncate and rewrite the table on a second connection,
	// which deadlocks on single-connection pools.
	_, err := enforcer.AddPolicies(policies)
	return err
}
