// AngelaMos | 2026
// policy.go

// Package policy decides whether a subject may perform an action on a
// resource. Every service consults Authorize before touching a repository;
// new actions are added to the rules table rather than as call-site checks.
package policy

import (
	"fmt"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// Subject is an authenticated actor.
type Subject struct {
	ID   string
	Role string
}

func (s *Subject) Is(role string) bool {
	return s != nil && s.Role == role
}

// GetID is nil safe: an anonymous subject has no id.
func (s *Subject) GetID() string {
	if s == nil {
		return ""
	}
	return s.ID
}

// Resource carries the ownership facts a rule may need. OwnerID is the
// owning subject of the resource (a store's owner); TargetID is the subject
// the action is aimed at (the user being deleted).
type Resource struct {
	OwnerID  string
	TargetID string
}

type Action string

const (
	ActionSignup Action = "auth.signup"
	ActionLogin  Action = "auth.login"
	ActionLogout Action = "auth.logout"

	ActionStoreList   Action = "store.list"
	ActionStoreGet    Action = "store.get"
	ActionStoreCreate Action = "store.create"
	ActionStoreUpdate Action = "store.update"
	ActionStoreDelete Action = "store.delete"

	ActionProductCreate Action = "product.create"
	ActionProductList   Action = "product.list"

	ActionRatingSubmit    Action = "rating.submit"
	ActionRatingViewOwn   Action = "rating.view_own"
	ActionRatingListStore Action = "rating.list_store"
	ActionRatingListAll   Action = "rating.list_all"

	ActionUserList           Action = "user.list"
	ActionUserGet            Action = "user.get"
	ActionUserCreate         Action = "user.create"
	ActionUserUpdate         Action = "user.update"
	ActionUserDelete         Action = "user.delete"
	ActionUserUpdatePassword Action = "user.update_password"

	ActionDashboardView Action = "dashboard.view"
)

var (
	ErrUnauthenticated = fmt.Errorf("authentication required: %w", core.ErrUnauthorized)
	ErrDenied          = fmt.Errorf("action denied: %w", core.ErrForbidden)
)

type rule struct {
	public bool
	allow  func(s *Subject, r Resource) bool
}

func anyone(*Subject, Resource) bool { return true }

func role(roles ...string) func(*Subject, Resource) bool {
	return func(s *Subject, _ Resource) bool {
		for _, r := range roles {
			if s.Role == r {
				return true
			}
		}
		return false
	}
}

func owningOwner(s *Subject, r Resource) bool {
	return s.Role == RoleOwner && r.OwnerID != "" && r.OwnerID == s.ID
}

func adminNotSelf(s *Subject, r Resource) bool {
	return s.Role == RoleAdmin && r.TargetID != s.ID
}

func self(s *Subject, r Resource) bool {
	return r.TargetID == s.ID
}

var rules = map[Action]rule{
	ActionSignup: {public: true, allow: anyone},
	ActionLogin:  {public: true, allow: anyone},
	ActionLogout: {allow: anyone},

	ActionStoreList:   {allow: anyone},
	ActionStoreGet:    {allow: anyone},
	ActionStoreCreate: {allow: role(RoleOwner, RoleAdmin)},
	ActionStoreUpdate: {allow: role(RoleAdmin)},
	ActionStoreDelete: {allow: role(RoleAdmin)},

	ActionProductCreate: {allow: owningOwner},
	ActionProductList:   {allow: anyone},

	ActionRatingSubmit:    {allow: role(RoleUser)},
	ActionRatingViewOwn:   {allow: role(RoleUser)},
	ActionRatingListStore: {allow: owningOwner},
	ActionRatingListAll:   {allow: role(RoleAdmin)},

	ActionUserList:           {allow: role(RoleAdmin)},
	ActionUserGet:            {allow: role(RoleAdmin)},
	ActionUserCreate:         {allow: role(RoleAdmin)},
	ActionUserUpdate:         {allow: role(RoleAdmin)},
	ActionUserDelete:         {allow: adminNotSelf},
	ActionUserUpdatePassword: {allow: self},

	ActionDashboardView: {allow: role(RoleAdmin)},
}

// Authorize returns nil when subject may perform action on res. A nil
// subject is an anonymous caller. Actions missing from the table are denied.
func Authorize(subject *Subject, action Action, res Resource) error {
	r, ok := rules[action]
	if !ok {
		return fmt.Errorf("%s: %w", action, ErrDenied)
	}

	if r.public {
		return nil
	}

	if subject == nil || subject.ID == "" {
		return fmt.Errorf("%s: %w", action, ErrUnauthenticated)
	}

	if !r.allow(subject, res) {
		return fmt.Errorf("%s: %w", action, ErrDenied)
	}

	return nil
}

// Allowed is the boolean form of Authorize.
func Allowed(subject *Subject, action Action, res Resource) bool {
	return Authorize(subject, action, res) == nil
}
