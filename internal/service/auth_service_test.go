package service

import (
	"context"
	"os"
	"testing"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/contract"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error      { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			for _, u := range r.users {
				if u.Email == s.Email {
					return u, nil
				}
			}
		case specification.ByID:
			for _, u := range r.users {
				if u.Id == s.ID {
					return u, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.users)), nil
}

type authUow struct {
	fakeUow
	userRepo *fakeUserRepo
}

func (u *authUow) UserRepository() contract.UserRepository { return u.userRepo }

func newAuthService() (IAuthService, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	uow := &authUow{userRepo: repo}
	return NewAuthService(&staticUowFactory{uow: uow}), repo
}

type staticUowFactory struct {
	uow *authUow
}

func (f *staticUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func TestRegisterAndLogin(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	defer os.Unsetenv("JWT_SECRET")

	svc, repo := newAuthService()
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    "budi@example.com",
		Password: "password123",
		FullName: "Pak Budi",
		Role:     "patient",
	})
	require.NoError(t, err)
	assert.Equal(t, "patient", res.Role)
	require.Len(t, repo.users, 1)
	assert.NotNil(t, repo.users[0].PasswordHash)
	assert.NotEqual(t, "password123", *repo.users[0].PasswordHash)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "budi@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "budi@example.com", login.User.Email)

	token, err := jwt.Parse(login.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, repo.users[0].Id.String(), claims["user_id"])
	assert.Equal(t, "patient", claims["role"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "budi@example.com", Password: "password123", FullName: "Pak Budi", Role: "patient",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email: "budi@example.com", Password: "different", FullName: "Impostor", Role: "patient",
	})
	assert.Error(t, err)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "budi@example.com", Password: "password123", FullName: "Pak Budi", Role: "patient",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "budi@example.com", Password: "wrong"})
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.EqualError(t, err, "invalid credentials")
}

func TestRegisterLinksCaregiver(t *testing.T) {
	svc, repo := newAuthService()
	ctx := context.Background()

	cg, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "dewi@example.com", Password: "password123", FullName: "Dewi", Role: "caregiver",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email: "budi@example.com", Password: "password123", FullName: "Pak Budi", Role: "patient",
		Caregiver: cg.Id.String(),
	})
	require.NoError(t, err)

	patient := repo.users[1]
	require.NotNil(t, patient.CaregiverId)
	assert.Equal(t, cg.Id, *patient.CaregiverId)
}

func TestRegisterRejectsUnknownCaregiver(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "budi@example.com", Password: "password123", FullName: "Pak Budi", Role: "patient",
		Caregiver: uuid.New().String(),
	})
	assert.EqualError(t, err, "caregiver not found")
}
