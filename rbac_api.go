package authcore

// RBAC sugar (spec.md §4.6): thin convenience wrappers over the grouping-
// policy and permission-policy management surface, grounded in the
// bundled default "g"/"p" model shape (user, role[, domain]) /
// (sub, obj, act[, eft]).

// GetRolesForUser returns the roles user is directly assigned to, within
// domain if given; inherited roles are not included (see
// GetImplicitRolesForUser).
func (e *Enforcer) GetRolesForUser(user string, domain ...string) ([]string, error) {
	rm, ok := e.rmMap["g"]
	if !ok {
		return nil, nil
	}
	return rm.GetRoles(user, domain...)
}

// GetUsersForRole returns the users directly assigned role, within domain
// if given; users who reach role only through another role are not
// included.
func (e *Enforcer) GetUsersForRole(role string, domain ...string) ([]string, error) {
	rm, ok := e.rmMap["g"]
	if !ok {
		return nil, nil
	}
	return rm.GetUsers(role, domain...)
}

// HasRoleForUser reports whether user is directly assigned role, within
// domain if given; a role reached only through inheritance reports false.
func (e *Enforcer) HasRoleForUser(user, role string, domain ...string) (bool, error) {
	roles, err := e.GetRolesForUser(user, domain...)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// AddRoleForUser assigns role to user: AddGroupingPolicy(user, role,
// domain...).
func (e *Enforcer) AddRoleForUser(user, role string, domain ...string) (bool, error) {
	return e.AddGroupingPolicy(ruleWithDomain(user, role, domain)...)
}

// DeleteRoleForUser unassigns role from user.
func (e *Enforcer) DeleteRoleForUser(user, role string, domain ...string) (bool, error) {
	return e.RemoveGroupingPolicy(ruleWithDomain(user, role, domain)...)
}

// DeleteRolesForUser unassigns every role user currently has, within
// domain if given.
func (e *Enforcer) DeleteRolesForUser(user string, domain ...string) (bool, error) {
	if len(domain) == 0 {
		return e.RemoveFilteredGroupingPolicy(0, user)
	}
	return e.RemoveFilteredGroupingPolicy(0, user, "", domain[0])
}

// DeleteUser removes user's role assignments and every permission
// directly granted to user.
func (e *Enforcer) DeleteUser(user string) (bool, error) {
	rolesRemoved, err := e.RemoveFilteredGroupingPolicy(0, user)
	if err != nil {
		return false, err
	}
	permsRemoved, err := e.RemoveFilteredPolicy(0, user)
	if err != nil {
		return false, err
	}
	return rolesRemoved || permsRemoved, nil
}

// DeleteRole removes every grouping-policy rule naming role (as either
// user or role) and every permission granted directly to role.
func (e *Enforcer) DeleteRole(role string) (bool, error) {
	asUser, err := e.RemoveFilteredGroupingPolicy(0, role)
	if err != nil {
		return false, err
	}
	asRole, err := e.RemoveFilteredGroupingPolicy(1, role)
	if err != nil {
		return false, err
	}
	perms, err := e.RemoveFilteredPolicy(0, role)
	if err != nil {
		return false, err
	}
	return asUser || asRole || perms, nil
}

// DeletePermission removes every "p"-type rule granting permission (obj,
// act, ...) to any subject.
func (e *Enforcer) DeletePermission(permission ...string) (bool, error) {
	return e.RemoveFilteredPolicy(1, permission...)
}

// AddPermissionForUser grants user the permission (obj, act, ...):
// AddPolicy(user, obj, act, ...).
func (e *Enforcer) AddPermissionForUser(user string, permission ...string) (bool, error) {
	return e.AddPolicy(append([]string{user}, permission...)...)
}

// DeletePermissionForUser revokes the permission (obj, act, ...) from
// user.
func (e *Enforcer) DeletePermissionForUser(user string, permission ...string) (bool, error) {
	return e.RemovePolicy(append([]string{user}, permission...)...)
}

// DeletePermissionsForUser revokes every permission directly granted to
// user (not those inherited through a role).
func (e *Enforcer) DeletePermissionsForUser(user string) (bool, error) {
	return e.RemoveFilteredPolicy(0, user)
}

// GetPermissionsForUser returns every "p"-type rule whose subject is
// user, directly granted (not expanded through role inheritance).
func (e *Enforcer) GetPermissionsForUser(user string) [][]string {
	return e.GetFilteredPolicy(0, user)
}

// HasPermissionForUser reports whether user is directly granted the
// permission (obj, act, ...).
func (e *Enforcer) HasPermissionForUser(user string, permission ...string) bool {
	return e.HasPolicy(append([]string{user}, permission...)...)
}

// GetImplicitRolesForUser returns every role user has, transitively
// through the role graph: a breadth-first walk over the role manager's
// direct GetRoles results, unlike GetRolesForUser which returns only the
// first level.
func (e *Enforcer) GetImplicitRolesForUser(user string, domain ...string) ([]string, error) {
	rm, ok := e.rmMap["g"]
	if !ok {
		return nil, nil
	}

	seen := map[string]bool{user: true}
	queue := []string{user}
	var roles []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		next, err := rm.GetRoles(name, domain...)
		if err != nil {
			return nil, err
		}
		for _, r := range next {
			if seen[r] {
				continue
			}
			seen[r] = true
			roles = append(roles, r)
			queue = append(queue, r)
		}
	}
	return roles, nil
}

// GetImplicitPermissionsForUser returns every permission user holds,
// either directly or through any role (including inherited roles) they
// are a member of.
func (e *Enforcer) GetImplicitPermissionsForUser(user string, domain ...string) ([][]string, error) {
	roles, err := e.GetImplicitRolesForUser(user, domain...)
	if err != nil {
		return nil, err
	}
	subjects := append([]string{user}, roles...)

	var perms [][]string
	for _, sub := range subjects {
		perms = append(perms, e.GetFilteredPolicy(0, sub)...)
	}
	return perms, nil
}

// GetImplicitUsersForPermission returns every user who holds the
// permission (obj, act, ...), either directly or through role
// inheritance.
func (e *Enforcer) GetImplicitUsersForPermission(permission ...string) ([]string, error) {
	seen := map[string]bool{}
	var candidates []string
	for _, name := range append(e.GetAllSubjects(), e.model.GetValuesForFieldInPolicy("g", "g", 0)...) {
		if !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}
	directHolders := map[string]bool{}
	for _, sub := range e.GetAllSubjects() {
		if e.HasPolicy(append([]string{sub}, permission...)...) {
			directHolders[sub] = true
		}
	}

	var users []string
	for _, user := range candidates {
		roles, err := e.GetImplicitRolesForUser(user)
		if err != nil {
			return nil, err
		}
		holds := directHolders[user]
		for _, r := range roles {
			if directHolders[r] {
				holds = true
				break
			}
		}
		if holds {
			users = append(users, user)
		}
	}
	return users, nil
}

func ruleWithDomain(user, role string, domain []string) []string {
	if len(domain) == 0 {
		return []string{user, role}
	}
	return append([]string{user, role}, domain...)
}
