package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

// AuthClient is the slice of the Firebase identity service the user flows
// need.
type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	SignInWithPassword(ctx context.Context, email, password string) (uid, idToken string, err error)
	DeleteUser(ctx context.Context, uid string) error
}

type UserUseCase struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	authClient AuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, itemRepo repository.ItemRepository, authClient AuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		itemRepo:   itemRepo,
		authClient: authClient,
	}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	MobileNo    string
	CollegeName string
	YearOfStudy string
	Branch      string
}

func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:          uid,
		Email:       input.Email,
		Name:        input.Name,
		MobileNo:    input.MobileNo,
		CollegeName: input.CollegeName,
		YearOfStudy: input.YearOfStudy,
		Branch:      input.Branch,
		Role:        "user",
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (uc *UserUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	uid, token, err := uc.authClient.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (uc *UserUseCase) GetMe(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name        string
	MobileNo    string
	Image       string
	CollegeName string
	YearOfStudy string
	Branch      string
	Location    *entity.Location
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.MobileNo != "" {
		user.MobileNo = input.MobileNo
	}
	if input.Image != "" {
		user.Image = input.Image
	}
	if input.CollegeName != "" {
		user.CollegeName = input.CollegeName
	}
	if input.YearOfStudy != "" {
		user.YearOfStudy = input.YearOfStudy
	}
	if input.Branch != "" {
		user.Branch = input.Branch
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ToggleFavorite adds the item to the user's favorites, or removes it if
// already present. Returns true when the item ends up favorited.
func (uc *UserUseCase) ToggleFavorite(ctx context.Context, userID, itemID string) (bool, error) {
	if _, err := uc.itemRepo.GetByID(ctx, itemID); err != nil {
		return false, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	favorited := true
	var favorites []string
	for _, id := range user.Favorites {
		if id == itemID {
			favorited = false
			continue
		}
		favorites = append(favorites, id)
	}
	if favorited {
		favorites = append(favorites, itemID)
	}

	user.Favorites = favorites
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return false, err
	}

	return favorited, nil
}

func (uc *UserUseCase) GetFavorites(ctx context.Context, userID string) ([]*entity.Item, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Favorites) == 0 {
		return nil, nil
	}

	return uc.itemRepo.ListByIDs(ctx, user.Favorites)
}
