package service

import (
	"context"
	"testing"

	"angaza/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeneficiary_RegisterAndSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeneficiaryService(db)
	programSvc := NewProgramService(db)
	ctx := context.Background()

	program, err := programSvc.CreateProgram(ctx, CreateProgramRequest{Name: "Food Security"})
	require.NoError(t, err)

	created, err := svc.CreateBeneficiary(ctx, CreateBeneficiaryRequest{
		FullName:      "Halima Yusuf",
		Location:      "Garissa",
		HouseholdSize: 6,
		ProgramID:     program.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.BeneficiaryActive, created.Status, "new beneficiaries register as active")
	assert.Equal(t, program.ID, created.ProgramID)

	_, err = svc.CreateBeneficiary(ctx, CreateBeneficiaryRequest{FullName: "Peter Otieno"})
	require.NoError(t, err)

	matches, total, err := svc.ListBeneficiaries(ctx, 1, 20, "Halima")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, matches, 1)
	assert.Equal(t, "Halima Yusuf", matches[0].FullName)
	assert.Equal(t, "Food Security", matches[0].ProgramName)
}

func TestBeneficiary_StatusTransitionAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeneficiaryService(db)
	ctx := context.Background()

	created, err := svc.CreateBeneficiary(ctx, CreateBeneficiaryRequest{FullName: "Moses Kiprop"})
	require.NoError(t, err)

	updated, err := svc.UpdateBeneficiary(ctx, created.ID, UpdateBeneficiaryRequest{Status: model.BeneficiaryInactive})
	require.NoError(t, err)
	assert.Equal(t, model.BeneficiaryInactive, updated.Status)

	require.NoError(t, svc.DeleteBeneficiary(ctx, created.ID))
	_, err = svc.GetBeneficiary(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBeneficiary_UnknownProgramRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewBeneficiaryService(db)

	_, err := svc.CreateBeneficiary(context.Background(), CreateBeneficiaryRequest{
		FullName:  "Nobody",
		ProgramID: "7d444840-9dc0-11d1-b245-5ffdce74fad2",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
