package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"courierhub/models"
	"courierhub/repository"
	"courierhub/utils"
)

type UserHandler struct {
	Repo  repository.UserRepository
	Roles repository.RoleRepository
	JWT   utils.JWTConfig
}

// Signup registers a back-office user. The password is bcrypt-hashed before
// storage and blanked in every response.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var user models.AppUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if user.Name == "" {
		missing = append(missing, "name")
	}
	if user.Email == "" {
		missing = append(missing, "email")
	}
	if user.Password == "" {
		missing = append(missing, "password")
	}
	if user.RoleName == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	role, err := h.Roles.GetRoleByName(user.RoleName)
	if err != nil {
		serverError(w, err)
		return
	}
	if role == nil {
		badRequest(w, "unknown role "+user.RoleName)
		return
	}

	existing, err := h.Repo.GetUserByEmail(user.Email)
	if err != nil {
		serverError(w, err)
		return
	}
	if existing != nil {
		badRequest(w, "email already registered")
		return
	}

	hashed, err := utils.HashPassword(user.Password)
	if err != nil {
		serverError(w, err)
		return
	}
	user.Password = hashed
	user.Active = true
	user.CreatedAt = time.Now().UTC()

	if err := h.Repo.CreateUser(&user); err != nil {
		respondError(w, err)
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "User created", Data: user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	var missing []string
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		validationError(w, missing)
		return
	}

	user, err := h.Repo.GetUserByEmail(req.Email)
	if err != nil {
		serverError(w, err)
		return
	}
	if user == nil || !user.Active || !utils.CheckPassword(req.Password, user.Password) {
		writeJSON(w, http.StatusUnauthorized, ApiResponse{Success: false, Message: "invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(utils.SessionClaims{
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.RoleName,
		Branch: user.Branch,
		Zone:   user.Zone,
	}, h.JWT)
	if err != nil {
		serverError(w, err)
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Login successful", Data: map[string]interface{}{
		"token": token,
		"user":  user,
	}})
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.GetUsers()
	if err != nil {
		serverError(w, err)
		return
	}
	for _, u := range list {
		u.Password = ""
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

type updateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Branch   string `json:"branch,omitempty"`
	Zone     string `json:"zone,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// UpdateUser patches user fields. A new password is re-hashed; role changes
// are validated against the role store.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request, email string) {
	user, err := h.Repo.GetUserByEmail(email)
	if err != nil {
		serverError(w, err)
		return
	}
	if user == nil {
		notFound(w, "user not found")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request payload: "+err.Error())
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			serverError(w, err)
			return
		}
		user.Password = hashed
	}
	if req.Role != "" {
		role, err := h.Roles.GetRoleByName(req.Role)
		if err != nil {
			serverError(w, err)
			return
		}
		if role == nil {
			badRequest(w, "unknown role "+req.Role)
			return
		}
		user.RoleName = req.Role
	}
	if req.Branch != "" {
		user.Branch = req.Branch
	}
	if req.Zone != "" {
		user.Zone = req.Zone
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.Repo.UpdateUser(user); err != nil {
		respondError(w, err)
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "User updated", Data: user})
}
