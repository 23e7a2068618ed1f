package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	kycapp "github.com/pawmart/pawmart-backend/internal/application"
	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/pkg/response"
	"github.com/pawmart/pawmart-backend/pkg/validation"
)

type KycHandler struct {
	Svc            *kycapp.KycService
	Review         *kycapp.ReviewService
	Queries        *kycapp.AdminQueryService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewKycHandler(svc *kycapp.KycService, review *kycapp.ReviewService, queries *kycapp.AdminQueryService, logger *logrus.Logger, maxUploadBytes int64) *KycHandler {
	return &KycHandler{Svc: svc, Review: review, Queries: queries, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type submitKycRequest struct {
	FullName    string `form:"fullName" binding:"required"`
	Email       string `form:"email" binding:"required,email"`
	PhoneNumber string `form:"phoneNumber" binding:"required"`
	DateOfBirth string `form:"dateOfBirth" binding:"required"`
	Gender      string `form:"gender"`
	Nationality string `form:"nationality"`

	IdentificationType   string `form:"identificationType" binding:"required"`
	IdentificationNumber string `form:"identificationNumber"`

	PresentAddress   string `form:"presentAddress"`
	PermanentAddress string `form:"permanentAddress"`

	EmergencyContactName     string `form:"emergencyContactName"`
	EmergencyContactRelation string `form:"emergencyContactRelation"`
	EmergencyContactPhone    string `form:"emergencyContactPhone"`

	RoleType string `form:"roleType" binding:"required"`

	BusinessName               string `form:"businessName"`
	BusinessRegistrationNumber string `form:"businessRegistrationNumber"`
	BusinessAddress            string `form:"businessAddress"`

	LicenseNumber     string `form:"licenseNumber"`
	LicenseIssueDate  string `form:"licenseIssueDate"`
	LicenseExpiryDate string `form:"licenseExpiryDate"`
}

// SubmitKyc handles the multipart KYC submission for the authenticated user.
func (h *KycHandler) SubmitKyc(c *gin.Context) {
	uid := c.GetString("userID")

	var req submitKycRequest
	if err := c.ShouldBind(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid multipart form", err.Error())
		c.JSON(resp.Status, resp)
		return
	}

	docs, closers, err := h.collectDocuments(form)
	defer closeAll(closers)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid documents", err.Error())
		c.JSON(resp.Status, resp)
		return
	}

	rec, err := h.Svc.Submit(c.Request.Context(), uid, submitInputFrom(req), docs)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, toKycResponse(rec), "KYC submitted successfully", nil)
	c.JSON(resp.Status, resp)
}

// GetAllKyc lists every KYC record for the admin dashboard.
func (h *KycHandler) GetAllKyc(c *gin.Context) {
	recs, err := h.Queries.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]kycResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toKycResponse(&recs[i]))
	}
	resp := response.Success(c, http.StatusOK, out, "KYC found", map[string]any{"count": len(out)})
	c.JSON(resp.Status, resp)
}

// GetMyKyc returns the caller's own submission, or null if none exists yet.
func (h *KycHandler) GetMyKyc(c *gin.Context) {
	uid := c.GetString("userID")
	rec, err := h.Svc.GetMyKyc(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, kycapp.ErrKycNotFound) {
			resp := response.Success[any](c, http.StatusOK, nil, "KYC not submitted yet", nil)
			c.JSON(resp.Status, resp)
			return
		}
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toKycResponse(rec), "KYC found", nil)
	c.JSON(resp.Status, resp)
}

func (h *KycHandler) GetKycByID(c *gin.Context) {
	rec, err := h.Queries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toKycResponse(rec), "KYC found", nil)
	c.JSON(resp.Status, resp)
}

// ApproveKyc flips a pending record to APPROVED and activates the profile.
func (h *KycHandler) ApproveKyc(c *gin.Context) {
	reviewer := c.GetString("userID")
	rec, err := h.Review.Approve(c.Request.Context(), c.Param("id"), reviewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toKycResponse(rec), "KYC approved successfully", nil)
	c.JSON(resp.Status, resp)
}

// RejectKyc flips a pending record to REJECTED.
func (h *KycHandler) RejectKyc(c *gin.Context) {
	reviewer := c.GetString("userID")
	rec, err := h.Review.Reject(c.Request.Context(), c.Param("id"), reviewer)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, toKycResponse(rec), "KYC rejected successfully", nil)
	c.JSON(resp.Status, resp)
}

// SearchKyc queries the Elasticsearch mirror for the admin search box.
func (h *KycHandler) SearchKyc(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		resp := response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		c.JSON(resp.Status, resp)
		return
	}
	size := 10
	if s := c.Query("size"); s != "" {
		if v, err := parseSize(s); err == nil {
			size = v
		}
	}
	hits, err := h.Queries.Search(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
	c.JSON(resp.Status, resp)
}

func (h *KycHandler) fail(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, kycapp.ErrAlreadySubmitted),
		errors.Is(err, kycapp.ErrAlreadyApproved),
		errors.Is(err, kycapp.ErrAlreadyRejected):
		status = http.StatusConflict
	case errors.Is(err, kycapp.ErrKycNotFound), errors.Is(err, kycapp.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, kycapp.ErrInvalidRole), errors.Is(err, kycapp.ErrMissingDocument):
		status = http.StatusBadRequest
	case errors.Is(err, kycapp.ErrUploadFailed):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
		h.Logger.WithError(err).Error("kyc request failed")
	}
	resp := response.Error[any](c, status, err.Error(), nil)
	c.JSON(resp.Status, resp)
}

// collectDocuments maps the known multipart file fields into the service's
// document set, enforcing the per-file size limit.
func (h *KycHandler) collectDocuments(form *multipart.Form) (kycapp.KycDocuments, []multipart.File, error) {
	var docs kycapp.KycDocuments
	var closers []multipart.File

	open := func(field string) (*kycapp.DocumentFile, error) {
		fhs := form.File[field]
		if len(fhs) == 0 {
			return nil, nil
		}
		return h.openHeader(fhs[0], &closers)
	}

	var err error
	if docs.Image, err = open("image"); err != nil {
		return docs, closers, err
	}
	if docs.IdentificationFront, err = open("identificationFrontImage"); err != nil {
		return docs, closers, err
	}
	if docs.IdentificationBack, err = open("identificationBackImage"); err != nil {
		return docs, closers, err
	}
	if docs.Signature, err = open("signatureImage"); err != nil {
		return docs, closers, err
	}
	if docs.BusinessRegistrationCertificate, err = open("businessRegistrationCertificate"); err != nil {
		return docs, closers, err
	}
	if docs.HotelLicense, err = open("hotelLicenseImage"); err != nil {
		return docs, closers, err
	}
	if docs.HygieneCertificate, err = open("hygieneCertificate"); err != nil {
		return docs, closers, err
	}
	for _, fh := range form.File["facilityPhotos"] {
		f, err := h.openHeader(fh, &closers)
		if err != nil {
			return docs, closers, err
		}
		docs.FacilityPhotos = append(docs.FacilityPhotos, *f)
	}
	return docs, closers, nil
}

func (h *KycHandler) openHeader(fh *multipart.FileHeader, closers *[]multipart.File) (*kycapp.DocumentFile, error) {
	if h.MaxUploadBytes > 0 && fh.Size > h.MaxUploadBytes {
		return nil, errFileTooLarge(fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	*closers = append(*closers, f)
	return &kycapp.DocumentFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Reader:      f,
	}, nil
}

func errFileTooLarge(name string) error {
	return fmt.Errorf("file %q exceeds the upload size limit", name)
}

func parseSize(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return v, nil
}

func closeAll(closers []multipart.File) {
	for _, f := range closers {
		_ = f.Close()
	}
}

func submitInputFrom(req submitKycRequest) kycapp.SubmitKycInput {
	return kycapp.SubmitKycInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Nationality: req.Nationality,

		IdentificationType:   req.IdentificationType,
		IdentificationNumber: req.IdentificationNumber,

		PresentAddress:   req.PresentAddress,
		PermanentAddress: req.PermanentAddress,

		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactRelation: req.EmergencyContactRelation,
		EmergencyContactPhone:    req.EmergencyContactPhone,

		RoleType: req.RoleType,

		BusinessName:               req.BusinessName,
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		BusinessAddress:            req.BusinessAddress,

		LicenseNumber:     req.LicenseNumber,
		LicenseIssueDate:  req.LicenseIssueDate,
		LicenseExpiryDate: req.LicenseExpiryDate,
	}
}

type kycResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`

	IdentificationType   string `json:"identification_type"`
	IdentificationNumber string `json:"identification_number,omitempty"`

	PresentAddress   string `json:"present_address,omitempty"`
	PermanentAddress string `json:"permanent_address,omitempty"`

	RoleType string `json:"role_type"`

	Image                    string `json:"image,omitempty"`
	IdentificationFrontImage string `json:"identification_front_image"`
	IdentificationBackImage  string `json:"identification_back_image"`
	SignatureImage           string `json:"signature_image,omitempty"`

	BusinessName                    string `json:"business_name,omitempty"`
	BusinessRegistrationNumber      string `json:"business_registration_number,omitempty"`
	BusinessAddress                 string `json:"business_address,omitempty"`
	BusinessRegistrationCertificate string `json:"business_registration_certificate,omitempty"`

	LicenseNumber      string `json:"license_number,omitempty"`
	LicenseIssueDate   string `json:"license_issue_date,omitempty"`
	LicenseExpiryDate  string `json:"license_expiry_date,omitempty"`
	HotelLicenseImage  string `json:"hotel_license_image,omitempty"`
	HygieneCertificate string `json:"hygiene_certificate,omitempty"`

	FacilityPhotos []string `json:"facility_photos,omitempty"`

	Status     string     `json:"status"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toKycResponse(rec *entity.KycRecord) kycResponse {
	return kycResponse{
		ID:          rec.ID,
		UserID:      rec.UserID,
		FullName:    rec.FullName,
		Email:       rec.Email,
		PhoneNumber: rec.PhoneNumber,
		DateOfBirth: rec.DateOfBirth,
		Gender:      rec.Gender,
		Nationality: rec.Nationality,

		IdentificationType:   rec.IdentificationType,
		IdentificationNumber: rec.IdentificationNumber,

		PresentAddress:   rec.PresentAddress,
		PermanentAddress: rec.PermanentAddress,

		RoleType: string(rec.RoleType),

		Image:                    rec.Image,
		IdentificationFrontImage: rec.IdentificationFrontImage,
		IdentificationBackImage:  rec.IdentificationBackImage,
		SignatureImage:           rec.SignatureImage,

		BusinessName:                    rec.BusinessName,
		BusinessRegistrationNumber:      rec.BusinessRegistrationNumber,
		BusinessAddress:                 rec.BusinessAddress,
		BusinessRegistrationCertificate: rec.BusinessRegistrationCertificate,

		LicenseNumber:      rec.LicenseNumber,
		LicenseIssueDate:   rec.LicenseIssueDate,
		LicenseExpiryDate:  rec.LicenseExpiryDate,
		HotelLicenseImage:  rec.HotelLicenseImage,
		HygieneCertificate: rec.HygieneCertificate,

		FacilityPhotos: rec.FacilityPhotos,

		Status:     string(rec.Status),
		ReviewedAt: rec.ReviewedAt,
		ReviewedBy: rec.ReviewedBy,

		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
