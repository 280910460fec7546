package domain

// Authorization policy. Every write path and scoped read path funnels through
// these decision functions instead of branching on the role inside handlers.
// All functions are pure: they look only at the principal and the entities
// handed to them, never at the store.

// CanCreateProject reports whether p may create projects. The creator becomes
// the project's moderator.
func CanCreateProject(p Principal) bool {
	return p.Role == RoleAdmin || p.Role == RoleModerator
}

// CanManageProject reports whether p may update or delete the project, create
// tasks in it, and decide or delete tickets under it.
func CanManageProject(p Principal, project *Project) bool {
	return p.IsAdmin() || project.IsModeratedBy(p.ID)
}

// CanReadProject reports whether p may see the project. hasAssignedTask must
// be true when p has at least one task assigned to them inside the project;
// it is the only way a plain user gains visibility.
func CanReadProject(p Principal, project *Project, hasAssignedTask bool) bool {
	switch p.Role {
	case RoleAdmin:
		return true
	case RoleModerator:
		return project.IsModeratedBy(p.ID) || project.HasMember(p.ID)
	default:
		return hasAssignedTask
	}
}

// CanListProjectTasks reports whether p may list the tasks of the project.
func CanListProjectTasks(p Principal, project *Project) bool {
	return p.IsAdmin() || project.IsModeratedBy(p.ID) || project.HasMember(p.ID)
}

// CanReadTask reports whether p may see the task.
func CanReadTask(p Principal, project *Project, task *Task) bool {
	return p.IsAdmin() ||
		project.IsModeratedBy(p.ID) ||
		project.HasMember(p.ID) ||
		task.IsAssignedTo(p.ID)
}

// CanEditTaskFields reports whether p may change task fields other than
// status (title, description, assignee, priority, due date).
func CanEditTaskFields(p Principal, project *Project) bool {
	return CanManageProject(p, project)
}

// CanCreateTicket reports whether p may submit a resolution ticket for the
// task. Only the assignee may, regardless of their role.
func CanCreateTicket(p Principal, task *Task) bool {
	return task.IsAssignedTo(p.ID)
}

// CanReadTicket reports whether p may see the ticket.
func CanReadTicket(p Principal, project *Project, ticket *Ticket) bool {
	return p.IsAdmin() || project.IsModeratedBy(p.ID) || ticket.ResolvedBy == p.ID
}

// CanDecideTicket reports whether p may verify or reject tickets under the
// project, or delete them.
func CanDecideTicket(p Principal, project *Project) bool {
	return CanManageProject(p, project)
}

// CanManageUsers reports whether p may list, edit, or delete user accounts.
func CanManageUsers(p Principal) bool {
	return p.IsAdmin()
}

// CanListUsersByRole reports whether p may look up active users by role
// (used to populate assignee and member pickers).
func CanListUsersByRole(p Principal) bool {
	return p.Role == RoleAdmin || p.Role == RoleModerator
}

// CanViewSystemAnalytics reports whether p may read the system-wide rollup.
func CanViewSystemAnalytics(p Principal) bool {
	return p.IsAdmin()
}

// CanViewProjectAnalytics reports whether p may read a project's rollup.
func CanViewProjectAnalytics(p Principal, project *Project) bool {
	return p.IsAdmin() || project.IsModeratedBy(p.ID) || project.HasMember(p.ID)
}

// CanViewModeratorAnalytics reports whether p may read the moderator rollup.
func CanViewModeratorAnalytics(p Principal) bool {
	return p.Role == RoleAdmin || p.Role == RoleModerator
}
