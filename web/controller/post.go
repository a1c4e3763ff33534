package controller

import (
	"errors"
	"net/http"
	"strconv"

	"medblog/database"
	"medblog/database/model"
	"medblog/logger"
	"medblog/web/entity"
	"medblog/web/service"

	"github.com/gin-gonic/gin"
)

// PostForm is the post create/update request body. Notify only applies
// to creation.
type PostForm struct {
	Title      string   `json:"title" form:"title"`
	Slug       string   `json:"slug" form:"slug"`
	Content    string   `json:"content" form:"content"`
	CoverImage string   `json:"coverImage" form:"coverImage"`
	Published  bool     `json:"published" form:"published"`
	Tags       []string `json:"tags" form:"tags"`
	Category   string   `json:"category" form:"category"`
	Notify     bool     `json:"notify" form:"notify"`
}

func (f *PostForm) toModel() *model.Post {
	return &model.Post{
		Title:      f.Title,
		Slug:       f.Slug,
		Content:    f.Content,
		CoverImage: f.CoverImage,
		Published:  f.Published,
		Tags:       model.Tags(f.Tags),
		Category:   f.Category,
	}
}

// PostController handles the public and admin post routes.
type PostController struct {
	BaseController

	postService    service.PostService
	settingService service.SettingService
	mailerService  *service.MailerService
	mediaService   *service.MediaService
}

// NewPostController creates a PostController and registers its routes.
func NewPostController(g *gin.RouterGroup, mailer *service.MailerService, media *service.MediaService) *PostController {
	a := &PostController{
		mailerService: mailer,
		mediaService:  media,
	}
	a.initRouter(g)
	return a
}

func (a *PostController) initRouter(g *gin.RouterGroup) {
	// admin
	g.GET("/admin/all", a.checkLogin, a.listAdmin)
	g.GET("/id/:id", a.checkLogin, a.getById)
	g.POST("", a.checkLogin, a.create)
	g.PUT("/:id", a.checkLogin, a.update)
	g.DELETE("/:id", a.checkLogin, a.delete)
	g.POST("/upload", a.checkLogin, a.upload)

	// public
	g.GET("", a.listPublic)
	g.GET("/:slug", a.getBySlug)
	g.POST("/:slug/view", a.incrementViews)
}

// listPublic serves the paginated, searchable public post listing.
func (a *PostController) listPublic(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, err := strconv.Atoi(c.Query("perPage"))
	if err != nil || perPage < 1 {
		if perPage, err = a.settingService.GetPageSize(); err != nil {
			jsonInternalError(c, "Failed to load posts", err)
			return
		}
	}
	search := c.Query("search")

	posts, total, err := a.postService.ListPublic(page, perPage, search)
	if err != nil {
		jsonInternalError(c, "Failed to load posts", err)
		return
	}
	c.JSON(http.StatusOK, entity.PostPage{Posts: posts, Total: total})
}

func (a *PostController) listAdmin(c *gin.Context) {
	posts, err := a.postService.ListAll()
	if err != nil {
		jsonInternalError(c, "Failed to load admin posts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *PostController) getById(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid post id")
		return
	}
	post, err := a.postService.GetById(id)
	if err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Post not found")
			return
		}
		jsonInternalError(c, "Failed to fetch post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *PostController) getBySlug(c *gin.Context) {
	post, err := a.postService.GetBySlug(c.Param("slug"))
	if err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Post not found")
			return
		}
		jsonInternalError(c, "Failed to fetch post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *PostController) incrementViews(c *gin.Context) {
	err := a.postService.IncrementViews(c.Param("slug"))
	if err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Post not found")
			return
		}
		jsonInternalError(c, "Failed to increment views", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// create stores a new post owned by the acting admin. When notify is set
// and the post is published, the newsletter dispatch starts in the
// background and the response does not wait for it.
func (a *PostController) create(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid post data")
		return
	}
	if form.Title == "" || form.Slug == "" {
		jsonError(c, http.StatusBadRequest, "Title and slug are required")
		return
	}

	user := getLoginUser(c)
	post := form.toModel()
	if err := a.postService.Create(post, user.Id); err != nil {
		if errors.Is(err, service.ErrDuplicateSlug) {
			jsonError(c, http.StatusBadRequest, "This slug already exists. Please change the URL slug.")
			return
		}
		jsonInternalError(c, "Failed to create post", err)
		return
	}

	if form.Notify && post.Published {
		logger.Infof("triggering newsletter for: %s", post.Title)
		a.mailerService.NotifySubscribers(post)
	}

	c.JSON(http.StatusOK, post)
}

func (a *PostController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid post id")
		return
	}
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid post data")
		return
	}

	post, err := a.postService.Update(id, form.toModel())
	if err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Post not found")
			return
		}
		if errors.Is(err, service.ErrDuplicateSlug) {
			jsonError(c, http.StatusBadRequest, "This slug already exists. Please change the URL slug.")
			return
		}
		jsonInternalError(c, "Failed to update post", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *PostController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid post id")
		return
	}
	if err := a.postService.Delete(id); err != nil {
		if database.IsNotFound(err) {
			jsonError(c, http.StatusNotFound, "Post not found")
			return
		}
		jsonInternalError(c, "Failed to delete post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// upload passes the multipart image through to the media host.
func (a *PostController) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		jsonInternalError(c, "Upload failed", err)
		return
	}
	defer file.Close()

	url, err := a.mediaService.Upload(file)
	if err != nil {
		jsonInternalError(c, "Upload failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
