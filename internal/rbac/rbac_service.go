package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

// permission is one role → resource/action grant.
type permission struct {
	role     string
	resource string
	action   string
}

// defaultPolicy is the static permission matrix. Admin and HR manage the
// workflow catalog; everyone may raise leave requests; approvers act on
// them through the workflow engine's own level checks.
var defaultPolicy = []permission{
	{"admin", "workflow", "create"},
	{"admin", "workflow", "read"},
	{"admin", "workflow", "update"},
	{"admin", "workflow", "delete"},
	{"hr", "workflow", "create"},
	{"hr", "workflow", "read"},
	{"hr", "workflow", "update"},
	{"hr", "workflow", "delete"},
	{"manager", "workflow", "read"},
	{"team_lead", "workflow", "read"},

	{"employee", "leave_request", "create"},
	{"employee", "leave_request", "read"},
	{"employee", "leave_request", "update"},
	{"employee", "leave_request", "delete"},
	{"manager", "leave_request", "read_all"},
	{"hr", "leave_request", "read_all"},
	{"admin", "leave_request", "read_all"},
	{"manager", "leave_request", "approve"},
	{"team_lead", "leave_request", "approve"},
	{"hr", "leave_request", "approve"},
	{"hr", "leave_request", "delete"},
	{"admin", "leave_request", "approve"},
	{"admin", "leave_request", "delete"},

	{"employee", "leave_balance", "read"},
	{"hr", "leave_balance", "read"},
	{"admin", "leave_balance", "read"},

	{"employee", "leave_type", "read"},
	{"hr", "leave_type", "read"},
	{"admin", "leave_type", "read"},
}

// roleInheritance lets elevated roles do everything an employee can.
var roleInheritance = map[string][]string{
	"team_lead": {"employee"},
	"manager":   {"employee"},
	"hr":        {"employee"},
	"admin":     {"employee", "hr", "manager"},
}

func NewService(enforcer *casbin.Enforcer) (Service, error) {
	s := &service{enforcer: enforcer}
	if err := s.loadPolicy(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicy() error {
	s.enforcer.ClearPolicy()

	for _, p := range defaultPolicy {
		if _, err := s.enforcer.AddPolicy(p.role, p.resource, p.action); err != nil {
			return err
		}
	}

	for role, parents := range roleInheritance {
		for _, parent := range parents {
			if _, err := s.enforcer.AddGroupingPolicy(role, parent); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(role, resource, action)
}
