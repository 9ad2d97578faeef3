// Package model defines the session record and the backend DTOs used by the client.
package model

// Session is the persisted identity of the current user. Nil pointers mean "null".
type Session struct {
	ProfileID       *int64   `json:"profileId"`
	Username        *string  `json:"username"`
	Token           *string  `json:"token"`
	RefreshToken    *string  `json:"refreshToken"`
	IsAuthenticated bool     `json:"isAuthenticated"`
	Roles           []string `json:"roles"`
}

// Clone returns a deep copy so callers never share pointers with the store.
func (s Session) Clone() Session {
	out := Session{IsAuthenticated: s.IsAuthenticated}
	if s.ProfileID != nil {
		v := *s.ProfileID
		out.ProfileID = &v
	}
	out.Username = cloneStr(s.Username)
	out.Token = cloneStr(s.Token)
	out.RefreshToken = cloneStr(s.RefreshToken)
	if s.Roles != nil {
		out.Roles = append([]string{}, s.Roles...)
	}
	return out
}

// BearerToken returns the token or "" when absent.
func (s Session) BearerToken() string {
	if s.Token == nil {
		return ""
	}
	return *s.Token
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ---- auth ----

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the identity issued by the backend.
type LoginResponse struct {
	ProfileID    int64    `json:"profileId"`
	Username     string   `json:"username"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	Roles        []string `json:"roles"`
}

// APIResponse is the envelope used by the registration and account flows.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

// Ack is the plain {success, message|error} reply of the OTP and account endpoints.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Email   string `json:"email,omitempty"`
}

// VerifyEmailResponse is returned once the OTP is accepted.
type VerifyEmailResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Email        string `json:"email"`
	AssignedRole string `json:"assignedRole"`
	NextStep     string `json:"nextStep"`
}

// RegisteredUser is the account created by the final registration step.
type RegisteredUser struct {
	ID           string   `json:"id"`
	ProfileID    int64    `json:"profileId"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
}

// RegisterCompleteResponse wraps the created account.
type RegisterCompleteResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    *RegisteredUser `json:"user,omitempty"`
}

// ---- profiles ----

// Profile is the alumni profile owned by the backend.
type Profile struct {
	ID              *int64  `json:"id,omitempty"`
	FirstName       string  `json:"firstName"`
	MiddleName      string  `json:"middleName,omitempty"`
	LastName        string  `json:"lastName"`
	PhoneNumber     string  `json:"phoneNumber"`
	Address         string  `json:"address"`
	Bio             string  `json:"bio,omitempty"`
	DateOfBirth     string  `json:"dateOfBirth"` // YYYY-MM-DD
	BatchYear       int     `json:"batchYear"`
	Faculty         string  `json:"faculty"`
	CurrentPosition string  `json:"currentPosition"`
	ProfileImageURL string  `json:"profileImageUrl,omitempty"`
	UserID          *int64  `json:"userId,omitempty"`
	Skills          []Skill `json:"skills,omitempty"`
}

// Connection status values returned by the follow status endpoint.
const (
	ConnectionConnected = "CONNECTED"
	ConnectionFollowed  = "FOLLOWED"
	ConnectionNone      = "NONE"
)

// Skill is a named skill attached to profiles.
type Skill struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ---- events ----

// EventLocation is where an event takes place.
type EventLocation struct {
	Address    string `json:"address,omitempty"`
	OnlineLink string `json:"onlineLink,omitempty"`
	RoomNumber string `json:"roomNumber,omitempty"`
}

// Event is an alumni event. Times are ISO-8601 strings as sent by the backend.
type Event struct {
	EventID            *int64         `json:"eventId,omitempty"`
	EventName          string         `json:"eventName"`
	EventDescription   string         `json:"eventDescription,omitempty"`
	StartTime          string         `json:"startTime"`
	EndTime            *string        `json:"endTime,omitempty"`
	EventLocation      *EventLocation `json:"eventLocation,omitempty"`
	Category           string         `json:"category,omitempty"`
	Active             *bool          `json:"active,omitempty"`
	OrganizerProfileID *int64         `json:"organizerProfileId,omitempty"`
}

// EventUpdate is the body of PUT /events/{id}. The backend names the
// location field differently here than on create.
type EventUpdate struct {
	EventID            *int64         `json:"eventId,omitempty"`
	EventName          string         `json:"eventName"`
	EventDescription   string         `json:"eventDescription,omitempty"`
	StartTime          string         `json:"startTime"`
	EndTime            *string        `json:"endTime,omitempty"`
	Location           *EventLocation `json:"location,omitempty"`
	Category           string         `json:"category,omitempty"`
	OrganizerProfileID *int64         `json:"organizerProfileId,omitempty"`
	Active             *bool          `json:"active,omitempty"`
}

// AsUpdate copies an Event into the update shape.
func (e Event) AsUpdate() EventUpdate {
	return EventUpdate{
		EventID:            e.EventID,
		EventName:          e.EventName,
		EventDescription:   e.EventDescription,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		Location:           e.EventLocation,
		Category:           e.Category,
		OrganizerProfileID: e.OrganizerProfileID,
		Active:             e.Active,
	}
}

// ---- jobs ----

// JobRequest creates a job posting.
type JobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompanyName string   `json:"companyName"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
	ExpiresAt   string   `json:"expiresAt,omitempty"`
}

// JobUpdate is a partial update; nil fields are left unchanged.
type JobUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	CompanyName *string  `json:"companyName,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	ExpiresAt   *string  `json:"expiresAt,omitempty"`
}

// Job is a job posting as returned by the backend.
type Job struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CompanyName  string   `json:"companyName"`
	Location     string   `json:"location"`
	Skills       []string `json:"skills"`
	PostedAt     string   `json:"postedAt"`
	ExpiresAt    string   `json:"expiresAt,omitempty"`
	PostedByID   *int64   `json:"postedById,omitempty"`
	PostedByName string   `json:"postedByName,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// JobSearch holds optional filters for /jobs/search.
type JobSearch struct {
	Title    string
	Company  string
	Location string
	Skills   []string
	Page     int
	Size     int
}

// Page is the backend's paged list envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// ---- recommendations ----

// RecommendedJob is a job ranked by skill similarity.
type RecommendedJob struct {
	JobID           int64    `json:"jobId"`
	Title           string   `json:"title"`
	CompanyName     string   `json:"companyName"`
	Location        string   `json:"location"`
	RequiredSkills  []string `json:"requiredSkills"`
	SimilarityScore float64  `json:"similarityScore"`
}

// RecommendedEvent is an event ranked for the current profile.
type RecommendedEvent struct {
	EventID   int64   `json:"eventId"`
	EventName string  `json:"eventName"`
	Category  string  `json:"category"`
	Location  string  `json:"location"`
	StartTime string  `json:"startTime"`
	Score     float64 `json:"score"`
}

// RecommendedUser is a profile ranked for the current profile.
type RecommendedUser struct {
	ProfileID       int64    `json:"profileId"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Faculty         string   `json:"faculty"`
	Skills          []string `json:"skills"`
	Score           float64  `json:"score"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
	CurrentPosition string   `json:"currentPosition"`
}

// Dashboard bundles the data loaded in parallel for the landing view.
type Dashboard struct {
	Profile           *Profile           `json:"profile"`
	RecommendedEvents []RecommendedEvent `json:"recommendedEvents"`
	RecommendedUsers  []RecommendedUser  `json:"recommendedUsers"`
	FollowingIDs      []int64            `json:"followingIds"`
}
