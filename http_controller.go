package credentials

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

type AuthControllerRoutes struct {
	Signup    string
	Login     string
	Protected string
}

type AuthController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
	Config Config
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Signup:    "/signup",
			Login:     "/login",
			Protected: "/protected",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Config == nil {
		panic("Missing Config in auth controller...")
	}

	return c
}

// WithAuther sets the Authenticator the controller delegates to
func WithAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithConfig sets the controller configuration
func WithConfig(cfg Config) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Config = cfg
		return c
	}
}

// WithControllerLogger sets the controller logger
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// WithDebug enables payload debug output
func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// RegisterAuthRoutes mounts the credential endpoints on the app
func RegisterAuthRoutes(app *fiber.App, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Signup, controller.SignupPost)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Get(controller.Routes.Protected,
		RequireAuth(controller.Auther, controller.Config),
		controller.ProtectedGet,
	)

	return controller
}

// SignupRequest payload
type SignupRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(1, 100),
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(1, 100),
		),
	)
}

func (a *AuthController) SignupPost(ctx *fiber.Ctx) error {
	payload := new(SignupRequest)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("Signup parse payload", "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": "Invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Info("Signup validation failed", "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	if a.Debug {
		fmt.Println("======= SIGNUP ======")
		fmt.Println(print.MaybePrettyJSON(map[string]string{"username": payload.Username}))
		fmt.Println("=====================")
	}

	if _, err := a.Auther.Signup(ctx.Context(), payload.Username, payload.Password); err != nil {
		if IsUserExistsError(err) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "User already exists",
			})
		}
		return a.serverError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

// LoginRequest payload, form encoded on the wire
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) LoginPost(ctx *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := ctx.BodyParser(payload); err != nil {
		a.Logger.Error("Login parse payload", "error", err)
		return invalidCredentialsResponse(ctx)
	}

	if err := payload.Validate(); err != nil {
		return invalidCredentialsResponse(ctx)
	}

	token, err := a.Auther.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryInternal {
			return a.serverError(ctx, err)
		}
		// same response for unknown user and wrong password
		return invalidCredentialsResponse(ctx)
	}

	return ctx.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (a *AuthController) ProtectedGet(ctx *fiber.Ctx) error {
	identity, ok := IdentityFromLocals(ctx, a.Config.GetContextKey())
	if !ok {
		return unauthenticatedResponse(ctx)
	}

	return ctx.JSON(fiber.Map{
		"message": "You have access!",
		"user":    identity.Username(),
	})
}

func (a *AuthController) serverError(ctx *fiber.Ctx, err error) error {
	a.Logger.Error("Internal error", "error", err)
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "Internal server error",
	})
}

func invalidCredentialsResponse(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"detail": "Invalid credentials",
	})
}
