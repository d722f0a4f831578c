package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/blogcrud/internal/blogservice"
	"github.com/sushihentaime/blogcrud/internal/userservice"
)

type registerUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	var input registerUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.userService.CreateUser(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.failedValidationResponse(w, r, map[string]string{"email": "a user with this email address already exists"})
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.failedValidationResponse(w, r, map[string]string{"username": "this username is already taken"})
		default:
			app.errorResponse(w, r, err, "user")
		}
		return
	}

	app.sendResponse(w, r, http.StatusCreated, "user created", userservice.Profile{ID: user.ID, Username: user.Username})
}

type loginUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (app *application) loginUserHandler(w http.ResponseWriter, r *http.Request) {
	var input loginUserRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.userService.LoginUser(r.Context(), input.Username, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsResponse(w, r)
		default:
			app.errorResponse(w, r, err, "user")
		}
		return
	}

	app.sendResponse(w, r, http.StatusOK, "user logged in", token)
}

func (app *application) logoutUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.getUserContext(r)

	err := app.userService.LogoutUser(r.Context(), user.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sendResponse(w, r, http.StatusOK, "user logged out", nil)
}

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	profile, err := app.userService.GetUser(r.Context(), id, user.ID)
	if err != nil {
		app.errorResponse(w, r, err, "user")
		return
	}

	app.sendResponse(w, r, http.StatusOK, "user fetched", profile)
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input userservice.UpdateUserRequest

	err = app.parseLenientJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	updated, err := app.userService.UpdateUser(r.Context(), id, user.ID, &input)
	if err != nil {
		app.errorResponse(w, r, err, "user")
		return
	}

	if !updated {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "user not updated", nil, nil)
		return
	}

	app.sendResponse(w, r, http.StatusOK, "user updated", nil)
}

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.GetBlogs(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sendResponse(w, r, http.StatusOK, "blogs fetched", blogs)
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	// user_id in the body is dropped here, the owner always comes from the token
	err := app.parseLenientJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	blog, err := app.blogService.CreateBlog(r.Context(), user.ID, &input)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrUserForeignKey):
			app.unauthorizedResponse(w, r)
		default:
			app.errorResponse(w, r, err, "blog")
		}
		return
	}

	app.sendResponse(w, r, http.StatusCreated, "blog created", blog)
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	blog, err := app.blogService.GetBlogByID(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err, "blog")
		return
	}

	app.sendResponse(w, r, http.StatusOK, "blog fetched", blog)
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input blogservice.UpdateBlogRequest

	err = app.parseLenientJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	updated, err := app.blogService.UpdateBlog(r.Context(), id, user.ID, &input)
	if err != nil {
		app.errorResponse(w, r, err, "blog")
		return
	}

	if !updated {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "blog not updated", nil, nil)
		return
	}

	app.sendResponse(w, r, http.StatusOK, "blog updated", nil)
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	deleted, err := app.blogService.DeleteBlog(r.Context(), id, user.ID)
	if err != nil {
		app.errorResponse(w, r, err, "blog")
		return
	}

	if !deleted {
		app.writeErrorResponse(w, r, http.StatusBadRequest, "blog not deleted", nil, nil)
		return
	}

	app.sendResponse(w, r, http.StatusOK, "blog deleted", nil)
}
