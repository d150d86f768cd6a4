package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	intconfig "tripbudget/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const userSelect = `SELECT id, name, username, email, role, status FROM users`

func scanUser(row interface{ Scan(...any) error }) (AuthUser, error) {
	var u AuthUser
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Role, &u.Status)
	return u, err
}

// GET /api/users
func GetUsers(c *gin.Context) {
	if intconfig.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database not connected", nil)
		return
	}
	rows, err := intconfig.DB.Query(userSelect + ` ORDER BY id ASC`)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}
	defer rows.Close()

	users := []AuthUser{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to scan user", err)
			return
		}
		users = append(users, u)
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if intconfig.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database not connected", nil)
		return
	}
	u, err := scanUser(intconfig.DB.QueryRow(userSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type userUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req userUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if intconfig.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database not connected", nil)
		return
	}

	sets := []string{}
	args := []any{}
	if strings.TrimSpace(req.Name) != "" {
		sets = append(sets, "name = ?")
		args = append(args, req.Name)
	}
	if strings.TrimSpace(req.Email) != "" {
		sets = append(sets, "email = ?")
		args = append(args, req.Email)
	}
	if strings.TrimSpace(req.Role) != "" {
		sets = append(sets, "role = ?")
		args = append(args, req.Role)
	}
	if strings.TrimSpace(req.Status) != "" {
		sets = append(sets, "status = ?")
		args = append(args, req.Status)
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
			return
		}
		sets = append(sets, "password_hash = ?")
		args = append(args, string(hash))
	}
	if len(sets) == 0 {
		RespondError(c, http.StatusBadRequest, "nothing to update", nil)
		return
	}

	args = append(args, id)
	res, err := intconfig.DB.Exec(
		`UPDATE users SET `+strings.Join(sets, ", ")+`, updated_at = NOW() WHERE id = ?`, args...)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to update user", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := intconfig.DB.QueryRow(`SELECT 1 FROM users WHERE id = ?`, id).Scan(&one); err != nil {
			RespondError(c, http.StatusNotFound, "user not found", nil)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if intconfig.DB == nil {
		RespondError(c, http.StatusInternalServerError, "database not connected", nil)
		return
	}
	res, err := intconfig.DB.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete user", err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		RespondError(c, http.StatusNotFound, "user not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
