package service

import (
	"encoding/json"

	"sorty/internal/dto"
	"sorty/internal/model"

	"github.com/samber/lo"
)

func assetToResponse(a *model.Asset) dto.AssetResponse {
	resp := dto.AssetResponse{
		ID:              a.ID.String(),
		Code:            a.Code,
		Name:            a.Name,
		Description:     a.Description,
		CategoryID:      a.CategoryID.String(),
		Status:          string(a.Status),
		Building:        a.Building,
		Office:          a.Office,
		Laboratory:      a.Laboratory,
		CurrentLocation: a.CurrentLocation,
		Brand:           a.Brand,
		Model:           a.Model,
		SerialNumber:    a.SerialNumber,
		AcquisitionCost: a.AcquisitionCost,
		UsefulLifeYears: a.UsefulLifeYears,
		ResidualValue:   a.ResidualValue,
		BookValue:       a.BookValue(now()),
		Supplier:        a.Supplier,
		InvoiceNumber:   a.InvoiceNumber,
		CreatedAt:       formatTime(a.CreatedAt),
		UpdatedAt:       formatTime(a.UpdatedAt),
	}
	if a.AcquisitionDate != nil {
		d := a.AcquisitionDate.Format("2006-01-02")
		resp.AcquisitionDate = &d
	}
	if a.AssignedToID != nil {
		id := a.AssignedToID.String()
		resp.AssignedToID = &id
	}
	if a.AssignedTo != nil {
		resp.AssignedToName = &a.AssignedTo.Name
	}
	if a.Category != nil {
		resp.CategoryName = a.Category.Name
	}
	return resp
}

func assignmentToResponse(a *model.AssetAssignment) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:           a.ID.String(),
		AssetID:      a.AssetID.String(),
		AssignedToID: a.AssignedToID.String(),
		AssignedByID: a.AssignedByID.String(),
		Status:       string(a.Status),
		AssignedAt:   formatTime(a.AssignedAt),
		ReturnedAt:   formatTimePtr(a.ReturnedAt),
		Location:     a.Location,
		Reason:       a.Reason,
		Notes:        a.Notes,
		ReturnNotes:  a.ReturnNotes,
	}
	if a.Asset != nil {
		resp.AssetCode = a.Asset.Code
		resp.AssetName = a.Asset.Name
	}
	if a.AssignedTo != nil {
		resp.AssignedToName = a.AssignedTo.Name
	}
	if a.AssignedBy != nil {
		resp.AssignedByName = a.AssignedBy.Name
	}
	return resp
}

func movementToResponse(m *model.AssetMovement) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:           m.ID.String(),
		AssetID:      m.AssetID.String(),
		Type:         string(m.Type),
		Subtype:      string(m.Subtype),
		Quantity:     m.Quantity,
		Cost:         m.Cost,
		Description:  m.Description,
		ActorID:      m.ActorID.String(),
		MovementDate: formatTime(m.MovementDate),
	}
	if m.ReferenceID != nil {
		ref := m.ReferenceID.String()
		resp.ReferenceID = &ref
	}
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &resp.Metadata)
	}
	if m.Asset != nil {
		resp.AssetCode = m.Asset.Code
	}
	if m.Actor != nil {
		resp.ActorName = m.Actor.Name
	}
	return resp
}

func maintenanceToResponse(m *model.Maintenance) dto.MaintenanceResponse {
	resp := dto.MaintenanceResponse{
		ID:            m.ID.String(),
		AssetID:       m.AssetID.String(),
		Type:          string(m.Type),
		Status:        string(m.Status),
		Title:         m.Title,
		Description:   m.Description,
		ScheduledDate: formatTime(m.ScheduledDate),
		StartedAt:     formatTimePtr(m.StartedAt),
		CompletedDate: formatTimePtr(m.CompletedDate),
		Cost:          m.Cost,
		Provider:      m.Provider,
		Notes:         m.Notes,
		CreatedByID:   m.CreatedByID.String(),
	}
	if m.Asset != nil {
		resp.AssetCode = m.Asset.Code
	}
	return resp
}

func incidentToResponse(i *model.Incident) dto.IncidentResponse {
	resp := dto.IncidentResponse{
		ID:           i.ID.String(),
		AssetID:      i.AssetID.String(),
		Type:         string(i.Type),
		Status:       string(i.Status),
		Description:  i.Description,
		IncidentDate: formatTime(i.IncidentDate),
		Cost:         i.Cost,
		Resolution:   i.Resolution,
		ReportedByID: i.ReportedByID.String(),
		ResolvedAt:   formatTimePtr(i.ResolvedAt),
		ClosedAt:     formatTimePtr(i.ClosedAt),
	}
	if i.ResolvedByID != nil {
		id := i.ResolvedByID.String()
		resp.ResolvedByID = &id
	}
	if i.Asset != nil {
		resp.AssetCode = i.Asset.Code
	}
	return resp
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:                     c.ID.String(),
		Name:                   c.Name,
		Description:            c.Description,
		DefaultCost:            c.DefaultCost,
		DefaultUsefulLifeYears: c.DefaultUsefulLifeYears,
		DefaultResidualValue:   c.DefaultResidualValue,
	}
	if c.ParentID != nil {
		pid := c.ParentID.String()
		resp.ParentID = &pid
	}
	if len(c.Children) > 0 {
		resp.Children = lo.Map(c.Children, func(child model.Category, _ int) dto.CategoryResponse {
			return categoryToResponse(&child)
		})
	}
	return resp
}

func userToResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		Department: u.Department,
		IsActive:   u.IsActive,
	}
}
