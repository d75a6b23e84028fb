// Package defaultrolemanager implements rbac.RoleManager as an in-memory
// directed graph of (name, domain) nodes, exactly the shape spec.md §4.2
// and §9 ("Role-manager graph vs. adjacency maps") describe.
package defaultrolemanager

import (
	"fmt"

	"github.com/riftlabs/authcore/log"
	"github.com/riftlabs/authcore/rbac"
)

// role is one node's adjacency entry: the set of roles it directly
// inherits.
type role struct {
	name  string
	roles map[string]*role
}

func newRole(name string) *role {
	return &role{name: name, roles: map[string]*role{}}
}

func (r *role) addRole(other *role) {
	r.roles[other.name] = other
}

func (r *role) deleteRole(name string) {
	delete(r.roles, name)
}

// RoleManager is the default, in-memory rbac.RoleManager.
type RoleManager struct {
	// allDomains[domain][name] is the adjacency entry for (name, domain).
	allDomains map[string]map[string]*role

	maxHierarchyLevel int

	matchingFunc       rbac.MatchingFunc
	domainMatchingFunc rbac.MatchingFunc

	logger log.Logger
}

// defaultDomain is the key used for the empty/no-domain scope, kept
// distinct from any real domain string a caller might use.
const defaultDomain = ""

// NewRoleManager returns a RoleManager whose HasLink traversal is bounded
// to maxHierarchyLevel hops (spec.md default: 10).
func NewRoleManager(maxHierarchyLevel int) *RoleManager {
	return &RoleManager{
		allDomains:        map[string]map[string]*role{},
		maxHierarchyLevel: maxHierarchyLevel,
		logger:            log.NewDefaultLogger(),
	}
}

func (rm *RoleManager) SetLogger(logger log.Logger) { rm.logger = logger }

func (rm *RoleManager) Clear() error {
	rm.allDomains = map[string]map[string]*role{}
	return nil
}

func oneDomain(domain []string) string {
	if len(domain) == 0 {
		return defaultDomain
	}
	return domain[0]
}

func (rm *RoleManager) domainBucket(domain string, create bool) map[string]*role {
	bucket, ok := rm.allDomains[domain]
	if !ok {
		if !create {
			return nil
		}
		bucket = map[string]*role{}
		rm.allDomains[domain] = bucket
	}
	return bucket
}

func (rm *RoleManager) getRole(domain, name string, create bool) *role {
	bucket := rm.domainBucket(domain, create)
	if bucket == nil {
		return nil
	}
	r, ok := bucket[name]
	if !ok {
		if !create {
			return nil
		}
		r = newRole(name)
		bucket[name] = r
	}
	return r
}

func (rm *RoleManager) AddLink(name1, name2 string, domain ...string) error {
	d := oneDomain(domain)
	r1 := rm.getRole(d, name1, true)
	r2 := rm.getRole(d, name2, true)
	r1.addRole(r2)
	return nil
}

func (rm *RoleManager) DeleteLink(name1, name2 string, domain ...string) error {
	d := oneDomain(domain)
	r1 := rm.getRole(d, name1, false)
	if r1 == nil {
		return nil
	}
	r1.deleteRole(name2)
	return nil
}

// matchingDomains returns every domain key that equals d, or (if a domain
// matching function is registered) matches it under that function.
func (rm *RoleManager) matchingDomains(d string) []string {
	if rm.domainMatchingFunc == nil {
		if _, ok := rm.allDomains[d]; ok {
			return []string{d}
		}
		return nil
	}
	var out []string
	for existing := range rm.allDomains {
		if existing == d || rm.domainMatchingFunc(d, existing) {
			out = append(out, existing)
		}
	}
	return out
}

func (rm *RoleManager) HasLink(name1, name2 string, domain ...string) (bool, error) {
	if name1 == name2 {
		return true, nil
	}
	d := oneDomain(domain)
	for _, dom := range rm.matchingDomains(d) {
		ok, err := rm.hasLinkInDomain(name1, name2, dom)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type queueEntry struct {
	name  string
	depth int
}

func (rm *RoleManager) hasLinkInDomain(name1, name2, domain string) (bool, error) {
	start := rm.getRole(domain, name1, false)
	if start == nil {
		return false, nil
	}
	visited := map[string]bool{name1: true}
	queue := []queueEntry{{name1, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= rm.maxHierarchyLevel {
			continue
		}
		r := rm.getRole(domain, cur.name, false)
		if r == nil {
			continue
		}
		for name, next := range r.roles {
			if rm.nameMatches(name, name2) {
				return true, nil
			}
			if visited[name] {
				continue
			}
			visited[name] = true
			queue = append(queue, queueEntry{next.name, cur.depth + 1})
		}
	}
	return false, nil
}

func (rm *RoleManager) nameMatches(candidate, target string) bool {
	if candidate == target {
		return true
	}
	if rm.matchingFunc != nil {
		return rm.matchingFunc(target, candidate)
	}
	return false
}

func (rm *RoleManager) GetRoles(name string, domain ...string) ([]string, error) {
	d := oneDomain(domain)
	r := rm.getRole(d, name, false)
	if r == nil {
		return []string{}, nil
	}
	out := make([]string, 0, len(r.roles))
	for n := range r.roles {
		out = append(out, n)
	}
	return out, nil
}

func (rm *RoleManager) GetUsers(name string, domain ...string) ([]string, error) {
	d := oneDomain(domain)
	bucket := rm.domainBucket(d, false)
	if bucket == nil {
		return []string{}, nil
	}
	var out []string
	for candidate, r := range bucket {
		if _, ok := r.roles[name]; ok {
			out = append(out, candidate)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (rm *RoleManager) PrintRoles() error {
	var lines []string
	for domain, bucket := range rm.allDomains {
		for name, r := range bucket {
			for other := range r.roles {
				if domain == defaultDomain {
					lines = append(lines, fmt.Sprintf("%s < %s", name, other))
				} else {
					lines = append(lines, fmt.Sprintf("%s < %s (domain %s)", name, other, domain))
				}
			}
		}
	}
	rm.logger.LogRole(lines)
	return nil
}

func (rm *RoleManager) AddMatchingFunc(name string, fn rbac.MatchingFunc) {
	rm.matchingFunc = fn
}

func (rm *RoleManager) AddDomainMatchingFunc(name string, fn rbac.MatchingFunc) {
	rm.domainMatchingFunc = fn
}
