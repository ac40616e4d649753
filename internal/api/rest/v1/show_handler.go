package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sommertheater/portal/internal/domain/poster"
	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/sommertheater/portal/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// ShowHandler defines the interface for productions, their gallery and the
// public Chronik
type ShowHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	Poster(ctx *gin.Context)

	UploadImage(ctx *gin.Context)
	ListImages(ctx *gin.Context)
	DeleteImage(ctx *gin.Context)

	Chronik(ctx *gin.Context)
	ChronikYear(ctx *gin.Context)
	PublicImage(ctx *gin.Context)
}

type showHandler struct {
	showService    shows.ShowService
	galleryService shows.GalleryService
	chronikService shows.ChronikService
	posterService  poster.Service
}

// NewShowHandler creates a new ShowHandler
func NewShowHandler(showService shows.ShowService, galleryService shows.GalleryService, chronikService shows.ChronikService, posterService poster.Service) ShowHandler {
	return &showHandler{
		showService:    showService,
		galleryService: galleryService,
		chronikService: chronikService,
		posterService:  posterService,
	}
}

func (handler *showHandler) bind(ctx *gin.Context) (*shows.ShowInput, bool) {
	var request ShowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "Ungültige Angaben zum Stück.", err)
		return nil, false
	}
	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, "Die Premiere muss im Format JJJJ-MM-TT angegeben werden.", err)
		return nil, false
	}
	return request.toDomain(), true
}

func (handler *showHandler) Create(ctx *gin.Context) {
	in, ok := handler.bind(ctx)
	if !ok {
		return
	}
	show, err := handler.showService.Create(ctx.Request.Context(), principalFrom(ctx), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toShowResponse(show))
}

func (handler *showHandler) List(ctx *gin.Context) {
	query := &shows.ShowQuery{}
	if year := ctx.Query("year"); len(year) > 0 {
		query.Year = httputil.ConvertToInt(year)
	}
	query.PublicOnly = ctx.Query("publicOnly") == "true"

	list, err := handler.showService.List(ctx.Request.Context(), principalFrom(ctx), query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]ShowResponse, len(list))
	for i, s := range list {
		response[i] = toShowResponse(s)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *showHandler) GetByID(ctx *gin.Context) {
	show, err := handler.showService.GetByID(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toShowResponse(show))
}

func (handler *showHandler) Update(ctx *gin.Context) {
	in, ok := handler.bind(ctx)
	if !ok {
		return
	}
	show, err := handler.showService.Update(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toShowResponse(show))
}

func (handler *showHandler) Delete(ctx *gin.Context) {
	if err := handler.showService.Delete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Poster handles the GET request for the printable poster
// @Summary Download the A4 poster of a show
// @Tags Show
// @Produce application/pdf
// @Param id path string true "Show ID"
// @Success 200 {file} file
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shows/{id}/poster.pdf [get]
func (handler *showHandler) Poster(ctx *gin.Context) {
	pdf, filename, err := handler.posterService.Poster(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", httputil.ContentDisposition(filename))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// UploadImage handles the multipart POST request that adds a gallery image
// @Summary Upload a gallery image
// @Description Form fields: file, caption, sort_order, tagged_user_ids (comma separated or repeated).
// @Tags Show
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Show ID"
// @Param file formData file true "Image"
// @Success 201 {object} GalleryImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /shows/{id}/images [post]
func (handler *showHandler) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		respondBadRequest(ctx, "Bitte wähle ein Bild aus.", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		respondBadRequest(ctx, "Das Bild konnte nicht gelesen werden.", err)
		return
	}
	defer file.Close()

	upload := &shows.ImageUpload{
		Filename:      header.Filename,
		ContentType:   header.Header.Get("Content-Type"),
		Caption:       ctx.PostForm("caption"),
		TaggedUserIDs: splitIDs(ctx.PostFormArray("tagged_user_ids")),
	}
	if order := ctx.PostForm("sort_order"); order != "" {
		n, err := strconv.Atoi(order)
		if err != nil {
			respondBadRequest(ctx, "Die Reihenfolge muss eine Zahl sein.", err)
			return
		}
		upload.SortOrder = n
	}

	img, err := handler.galleryService.Upload(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"), upload, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, toGalleryImageResponse(img))
}

// splitIDs accepts both repeated form fields and comma separated values.
func splitIDs(values []string) []string {
	var out []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

func (handler *showHandler) ListImages(ctx *gin.Context) {
	list, err := handler.galleryService.List(ctx.Request.Context(), principalFrom(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]GalleryImageResponse, len(list))
	for i, img := range list {
		response[i] = toGalleryImageResponse(img)
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *showHandler) DeleteImage(ctx *gin.Context) {
	if err := handler.galleryService.Delete(ctx.Request.Context(), principalFrom(ctx), ctx.Param("imageId")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Chronik handles the public GET request for the archive
// @Summary Public Chronik
// @Description Public shows grouped by year, newest first. Images only appear when every tagged member consented.
// @Tags Chronik
// @Produce json
// @Success 200 {array} ChronikYearResponse
// @Router /chronik [get]
func (handler *showHandler) Chronik(ctx *gin.Context) {
	years, err := handler.chronikService.Chronik(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	response := make([]ChronikYearResponse, len(years))
	for i := range years {
		response[i] = toChronikYearResponse(&years[i])
	}
	ctx.JSON(http.StatusOK, response)
}

func (handler *showHandler) ChronikYear(ctx *gin.Context) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		respondBadRequest(ctx, "Ungültiges Jahr.", err)
		return
	}
	y, err := handler.chronikService.Year(ctx.Request.Context(), year)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toChronikYearResponse(y))
}

func (handler *showHandler) PublicImage(ctx *gin.Context) {
	img, rc, err := handler.galleryService.OpenPublic(ctx.Request.Context(), ctx.Param("imageId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer rc.Close()

	ctx.DataFromReader(http.StatusOK, -1, img.ContentType, rc, map[string]string{
		"Cache-Control": "public, max-age=300",
	})
}
