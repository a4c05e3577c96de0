package handler

// --- Form payloads ---

type registerForm struct {
	Username string `form:"username" validate:"required,max=64"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role"     validate:"required"`
	Skills   string `form:"skills"   validate:"max=1000"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type projectForm struct {
	Title       string `form:"title"       validate:"required,max=200"`
	Description string `form:"description" validate:"max=5000"`
}

// reviewForm allows an empty review: blank submissions are ignored, not rejected.
type reviewForm struct {
	Review string `form:"review" validate:"max=2000"`
}
