package user

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultProfilePhoto is used when registration carries no photo upload.
const DefaultProfilePhoto = "https://www.gravatar.com/avatar/00000000000000000000000000000000?d=mp&f=y"

type RegisterPayload struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,gte=8"`
	Location string `json:"location" form:"location" validate:"required"`

	// ProfilePhoto is filled by the handler after storing the upload,
	// it is never read from the request body.
	ProfilePhoto string `json:"-" form:"-"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenPayload struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateProfilePayload struct {
	Name     string `json:"name" form:"name"`
	Location string `json:"location" form:"location"`

	ProfilePhoto string `json:"-" form:"-"`
}

type Document struct {
	Id           string `bson:"_id"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	Password     string `bson:"password"`
	Location     string `bson:"location"`
	ProfilePhoto string `bson:"profilePhoto"`
	Role         string `bson:"role"`
	RefreshToken string `bson:"refreshToken,omitempty"`
	CreatedAt    int64  `bson:"createdAt"`
}

// User is the public view of a Document. It never carries the password hash
// or the refresh token.
type User struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	Role         string `json:"role"`
	ProfilePhoto string `json:"profilePhoto"`
}

func (d *Document) PublicView() *User {
	return &User{
		Id:           d.Id,
		Name:         d.Name,
		Email:        d.Email,
		Location:     d.Location,
		Role:         d.Role,
		ProfilePhoto: d.ProfilePhoto,
	}
}

// DocumentUpdate is a partial update, empty fields are left unchanged.
type DocumentUpdate struct {
	Name         string
	Location     string
	ProfilePhoto string
	RefreshToken string
}

type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

type AccessTokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	User *User `json:"user"`
}
