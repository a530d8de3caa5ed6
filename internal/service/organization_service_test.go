package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDepartment_RefusedWhileStaffed(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	ctx := context.Background()

	department, err := svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: "Field Operations"})
	require.NoError(t, err)

	_, err = svc.CreateStaff(ctx, CreateStaffRequest{
		FullName:     "Grace Njeri",
		Email:        "grace@angaza.org",
		Position:     "Field Coordinator",
		DepartmentID: department.ID,
	})
	require.NoError(t, err)

	err = svc.DeleteDepartment(ctx, department.ID)
	require.ErrorIs(t, err, ErrInUse)

	departments, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, departments, 1)
	assert.EqualValues(t, 1, departments[0].StaffCount)
}

func TestCreateDepartment_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	ctx := context.Background()

	_, err := svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: "Finance"})
	require.NoError(t, err)

	_, err = svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: "Finance"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStaff_LifecycleAndDepartmentMove(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)
	ctx := context.Background()

	ops, err := svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: "Operations"})
	require.NoError(t, err)
	hr, err := svc.CreateDepartment(ctx, CreateDepartmentRequest{Name: "HR"})
	require.NoError(t, err)

	member, err := svc.CreateStaff(ctx, CreateStaffRequest{
		FullName:     "David Mwangi",
		Email:        "david@angaza.org",
		DepartmentID: ops.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, ops.ID, member.DepartmentID)

	listed, _, err := svc.ListStaff(ctx, 1, 20)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Operations", listed[0].DepartmentName)

	_, err = svc.CreateStaff(ctx, CreateStaffRequest{
		FullName: "Impostor", Email: "david@angaza.org",
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	moved, err := svc.UpdateStaff(ctx, member.ID, UpdateStaffRequest{DepartmentID: hr.ID})
	require.NoError(t, err)
	assert.Equal(t, hr.ID, moved.DepartmentID)

	// Operations is empty now and can go
	require.NoError(t, svc.DeleteDepartment(ctx, ops.ID))

	require.NoError(t, svc.DeleteStaff(ctx, member.ID))
	_, total, err := svc.ListStaff(ctx, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateStaff_UnknownDepartmentRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrganizationService(db)

	_, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		FullName:     "Nobody",
		Email:        "nobody@angaza.org",
		DepartmentID: "0b54f3f3-44d5-4f70-9a1c-7b8a2a2f9f01",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
