package handler

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"datasetregistry/internal/core"
	"datasetregistry/internal/model"
	"datasetregistry/internal/service"
)

// createDatasetRequest is the JSON body of a dataset registration.
// ai_metadata is base64 encoded. upload_timestamp is accepted for
// compatibility and ignored: the server clock stamps every dataset.
type createDatasetRequest struct {
	Admin           string      `json:"admin"`
	User            string      `json:"user"`
	Contributor     string      `json:"contributor"`
	ContentHash     string      `json:"content_hash"`
	AIMetadata      []byte      `json:"ai_metadata"`
	FileName        string      `json:"file_name"`
	FileSize        uint64      `json:"file_size"`
	DataURI         string      `json:"data_uri"`
	ColumnCount     uint64      `json:"column_count"`
	RowCount        uint64      `json:"row_count"`
	QualityScore    json.Number `json:"quality_score"`
	UploadTimestamp *time.Time  `json:"upload_timestamp,omitempty"`
}

type datasetActorRequest struct {
	User  string `json:"user"`
	Actor string `json:"actor"`
}

// qualityScore narrows the JSON number to a byte. Anything that is not a
// whole number in 0..255 becomes 255 so the range check reports it in its
// usual order. An absent score is 0.
func qualityScore(n json.Number) uint8 {
	if n == "" {
		return 0
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f > math.MaxUint8 || f != math.Trunc(f) {
		return math.MaxUint8
	}
	return uint8(f)
}

// toServiceRequest converts the body.
func (r createDatasetRequest) toServiceRequest() (service.CreateDatasetRequest, error) {
	hash, err := model.ParseHash(r.ContentHash)
	if err != nil {
		return service.CreateDatasetRequest{}, err
	}
	return service.CreateDatasetRequest{
		Admin: r.Admin,
		User:  r.User,
		CreateDatasetInput: core.CreateDatasetInput{
			Contributor:  r.Contributor,
			ContentHash:  hash,
			AIMetadata:   r.AIMetadata,
			FileName:     r.FileName,
			FileSize:     r.FileSize,
			DataURI:      r.DataURI,
			ColumnCount:  r.ColumnCount,
			RowCount:     r.RowCount,
			QualityScore: qualityScore(r.QualityScore),
		},
	}, nil
}

// CreateDataset registers a dataset and credits its contributor.
//
// @Summary  Register a dataset
// @Tags     datasets
// @Accept   json
// @Produce  json
// @Param    body body createDatasetRequest true "dataset registration"
// @Success  201 {object} model.Dataset
// @Failure  400 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /datasets [post]
func CreateDataset(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createDatasetRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		req, err := body.toServiceRequest()
		if err != nil {
			return writeServiceError(c, err)
		}
		ds, err := svc.CreateDataset(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ds)
	}
}

// ListDatasets lists datasets newest first with limit & offset.
//
// @Summary  List datasets
// @Tags     datasets
// @Produce  json
// @Param    contributor query string false "contributor identity"
// @Param    registry    query string false "registry owner"
// @Param    active      query bool   false "only active datasets"
// @Param    limit       query int    false "page size" default(10)
// @Param    offset      query int    false "page offset" default(0)
// @Success  200 {object} service.DatasetListResult
// @Failure  400 {object} errorPayload
// @Router   /datasets [get]
func ListDatasets(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		active, err := strconv.ParseBool(c.Query("active", "false"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ACTIVE", "invalid active flag")
		}

		res, err := svc.ListDatasets(c.UserContext(), service.DatasetQuery{
			Contributor: c.Query("contributor"),
			Registry:    c.Query("registry"),
			ActiveOnly:  active,
			Limit:       limit,
			Offset:      offset,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDataset returns a dataset by ID.
//
// @Summary  Get a dataset
// @Tags     datasets
// @Produce  json
// @Param    id path string true "dataset id"
// @Success  200 {object} model.Dataset
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /datasets/{id} [get]
func GetDataset(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		ds, err := svc.GetDataset(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ds)
	}
}

// RecordDownload counts a download and returns a presigned URL for stored artifacts.
//
// @Summary  Record a download
// @Tags     datasets
// @Accept   json
// @Produce  json
// @Param    id   path string              true "dataset id"
// @Param    body body datasetActorRequest true "downloading user"
// @Success  200 {object} service.DownloadResult
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /datasets/{id}/downloads [post]
func RecordDownload(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body datasetActorRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		res, err := svc.RecordDownload(c.UserContext(), id, body.User)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeactivateDataset marks a dataset inactive on behalf of its contributor.
//
// @Summary  Deactivate a dataset
// @Tags     datasets
// @Accept   json
// @Produce  json
// @Param    id   path string              true "dataset id"
// @Param    body body datasetActorRequest true "acting contributor"
// @Success  200 {object} model.Dataset
// @Failure  403 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Router   /datasets/{id}/deactivate [post]
func DeactivateDataset(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var body datasetActorRequest
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		ds, err := svc.Deactivate(c.UserContext(), id, body.Actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ds)
	}
}

// UploadArtifact stores a data file (multipart/form-data, field name: file).
//
// @Summary  Upload a dataset artifact
// @Tags     artifacts
// @Accept   mpfd
// @Produce  json
// @Param    file formData file true "data file"
// @Success  201 {object} model.Artifact
// @Failure  400 {object} errorPayload
// @Failure  503 {object} errorPayload
// @Router   /artifacts [post]
func UploadArtifact(svc service.RegistryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		a, err := svc.UploadArtifact(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}
