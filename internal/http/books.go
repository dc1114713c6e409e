package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/smartlibrary/internal/library"
)

type BooksController struct {
	library *library.Service
	logger  *zap.Logger
}

func NewBooksController(svc *library.Service, logger *zap.Logger) *BooksController {
	return &BooksController{
		library: svc,
		logger:  logger,
	}
}

func (controller *BooksController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/books", controller.ListBooks)
	api.POST("/books", controller.AddBook)
	api.GET("/books/search", controller.SearchBooks)
	api.GET("/books/:isbn", controller.GetBook)
	api.PATCH("/books/:isbn", controller.UpdateBook)
	api.DELETE("/books/:isbn", controller.DeleteBook)
}

func (controller *BooksController) ListBooks(c *gin.Context) {
	books, err := controller.library.ListBooks(c.Request.Context())
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	books, err := controller.library.SearchBooks(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetBook(c *gin.Context) {
	book, err := controller.library.GetBook(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *BooksController) AddBook(c *gin.Context) {
	var req library.NewBook
	if !bindJSON(c, &req) {
		return
	}

	book, err := controller.library.AddBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusCreated, library.StatusBookAdded, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	var patch library.BookPatch
	if !bindJSON(c, &patch) {
		return
	}

	book, err := controller.library.UpdateBook(c.Request.Context(), c.Param("isbn"), patch)
	if err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusOK, library.StatusBookUpdated, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	if err := controller.library.DeleteBook(c.Request.Context(), c.Param("isbn")); err != nil {
		respondError(c, controller.logger, err)
		return
	}
	respondStatus(c, http.StatusOK, library.StatusBookDeleted, nil)
}
