package handler

import (
	"github.com/taskboard/tracker-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}

func toUpdateProjectInput(req updateProjectRequest) ports.UpdateProjectInput {
	return ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		MemberIDs:   req.MemberIDs,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
}

func toUpdateTaskInput(req updateTaskRequest) ports.UpdateTaskInput {
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
}

func toCreateTicketInput(req createTicketRequest) ports.CreateTicketInput {
	return ports.CreateTicketInput{
		TaskID:          req.TaskID,
		ResolutionNotes: req.ResolutionNotes,
	}
}

func toVerifyTicketInput(req verifyTicketRequest) ports.VerifyTicketInput {
	return ports.VerifyTicketInput{
		Decision:        req.Decision,
		RejectionReason: req.RejectionReason,
	}
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	}
}
