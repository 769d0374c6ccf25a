package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/db"
	"github.com/maanvikp20/promosite/internal/models"
)

func newCollection(t *testing.T, dir, name string) *db.Collection {
	t.Helper()
	return db.NewCollection(name, db.NewFileBackend(filepath.Join(dir, name+".json")), nil)
}

func TestRecordRepo_CRUD(t *testing.T) {
	repo := NewStudentRepo(newCollection(t, t.TempDir(), StudentsCollection))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Record{"id": "1", "firstName": "A"}))

	err := repo.Create(ctx, models.Record{"id": "1", "firstName": "Dup"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "A", rec["firstName"])

	missing, err := repo.FindByID(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, missing)

	updated, err := repo.Update(ctx, "1", func(r models.Record) error {
		r["firstName"] = "Z"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Z", updated["firstName"])

	_, err = repo.Update(ctx, "2", func(models.Record) error { return nil })
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Student not found", apperr.From(err).Message)

	removed, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Z", removed["firstName"])

	_, err = repo.Delete(ctx, "1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestRecordRepo_NumericIDsMatchPathIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, StudentsCollection+".json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 42, "firstName": "N"}]`), 0o644))
	repo := NewStudentRepo(newCollection(t, dir, StudentsCollection))
	ctx := context.Background()

	rec, err := repo.FindByID(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, json.Number("42"), rec["id"])

	err = repo.Create(ctx, models.Record{"id": "42"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestRecordRepo_UpdateMutateErrorLeavesStore(t *testing.T) {
	repo := NewStudentRepo(newCollection(t, t.TempDir(), StudentsCollection))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, models.Record{"id": "1", "firstName": "A"}))

	_, err := repo.Update(ctx, "1", func(r models.Record) error {
		r["firstName"] = "changed"
		return apperr.BadRequest("nope", "")
	})
	require.Error(t, err)

	rec, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "A", rec["firstName"])
}

func TestSubmissionRepo_Approve(t *testing.T) {
	dir := t.TempDir()
	repo := NewSubmissionRepo(newCollection(t, dir, SubmissionsCollection), newCollection(t, dir, ApprovedCollection))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Record{"id": "x", "status": "pending"}))
	require.NoError(t, repo.Create(ctx, models.Record{"id": "y", "status": "rejected"}))

	moved, err := repo.Approve(ctx, "x", func(r models.Record) error {
		r["status"] = string(models.StatusApproved)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", moved["status"])

	src, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, src, 1)
	assert.Equal(t, "y", src[0].ID())

	dst, err := repo.Approved().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, dst, 1)
	assert.Equal(t, "x", dst[0].ID())

	_, err = repo.Approve(ctx, "x", func(models.Record) error { return nil })
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestSubmissionRepo_ApproveConflictWhenAlreadyApproved(t *testing.T) {
	dir := t.TempDir()
	repo := NewSubmissionRepo(newCollection(t, dir, SubmissionsCollection), newCollection(t, dir, ApprovedCollection))
	ctx := context.Background()

	require.NoError(t, repo.Approved().Create(ctx, models.Record{"id": "x"}))
	require.NoError(t, repo.RecordRepo.Create(ctx, models.Record{"id": "x"}))

	_, err := repo.Approve(ctx, "x", func(models.Record) error { return nil })
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	src, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, src, 1)
}

func TestSubmissionRepo_CreateRejectsApprovedID(t *testing.T) {
	dir := t.TempDir()
	repo := NewSubmissionRepo(newCollection(t, dir, SubmissionsCollection), newCollection(t, dir, ApprovedCollection))
	ctx := context.Background()

	require.NoError(t, repo.Approved().Create(ctx, models.Record{"id": "x"}))

	err := repo.Create(ctx, models.Record{"id": "x"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecordRepo_IntegralNumberSpellingsCollide(t *testing.T) {
	repo := NewStudentRepo(newCollection(t, t.TempDir(), StudentsCollection))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Record{"id": json.Number("1.0")}))
	for _, id := range []any{json.Number("1"), json.Number("1e0"), "1"} {
		err := repo.Create(ctx, models.Record{"id": id})
		assert.True(t, apperr.Is(err, apperr.KindConflict), "id %v", id)
	}

	rec, err := repo.FindByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, json.Number("1.0"), rec["id"])

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSubmissionRepo_FindByStatus(t *testing.T) {
	dir := t.TempDir()
	repo := NewSubmissionRepo(newCollection(t, dir, SubmissionsCollection), newCollection(t, dir, ApprovedCollection))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.Record{"id": "1"}))
	require.NoError(t, repo.Create(ctx, models.Record{"id": "2", "status": "rejected"}))

	pending, err := repo.FindByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].ID())

	all, err := repo.FindByStatus(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductRepo_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")

	cat, err := NewProductRepo(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cat.Products)

	require.NoError(t, os.WriteFile(path, []byte(`{"products":[{"name":"Mug"}],"totalProducts":40}`), 0o644))
	cat, err = NewProductRepo(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Products, 1)
	assert.Equal(t, "Mug", cat.Products[0]["name"])
	assert.Equal(t, 40, cat.TotalProducts)
}
