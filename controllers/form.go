package controllers

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"icard-api/config"
	"icard-api/models"
	"icard-api/services"
)

// Upload intake contract: images only, 5 MiB per file.
const maxUploadSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// uploadError carries the status code the intake failure maps to.
type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

// SubmitGazetted handles the gazetted application form
func SubmitGazetted(c *gin.Context) {
	submitApplication(c, "gazetted")
}

// SubmitNonGazetted handles the non-gazetted application form
func SubmitNonGazetted(c *gin.Context) {
	submitApplication(c, "non-gazetted")
}

func submitApplication(c *gin.Context, variantKey string) {
	v, _ := models.VariantByKey(variantKey)

	files, err := saveUploadedImages(c, v.UploadFields)
	if err != nil {
		status := http.StatusInternalServerError
		var ue *uploadError
		if errors.As(err, &ue) {
			status = ue.status
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	in := services.SubmissionInput{
		UserID:                 c.PostForm("userId"),
		Name:                   c.PostForm("name"),
		BusinessKey:            businessKeyField(c, v),
		Designation:            c.PostForm("designation"),
		Department:             c.PostForm("department"),
		Station:                c.PostForm("station"),
		BillUnit:               c.PostForm("billUnit"),
		Dob:                    c.PostForm("dob"),
		Mobile:                 c.PostForm("mobile"),
		Address:                c.PostForm("address"),
		Reason:                 c.PostForm("reason"),
		EmergencyContactName:   c.PostForm("emergencyContactName"),
		EmergencyContactNumber: c.PostForm("emergencyContactNumber"),
		BloodGroup:             c.PostForm("bloodGroup"),
		Family:                 c.PostForm("family"),
		Photo:                  files["photo"],
		Sign:                   files["sign"],
		HindiName:              files["hindiName"],
		HindiDesig:             files["hindiDesig"],
	}

	rec, err := services.NewSubmissionService(config.DB).Submit(v, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	notifyNewSubmission(v, rec)

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       v.Label + " employee application submitted successfully",
		"id":            rec.Base().ID,
		"applicationNo": rec.Base().ApplicationNo,
	})
}

// businessKeyField reads the variant's business key from its form field
// (ruid for gazetted, empNo for non-gazetted).
func businessKeyField(c *gin.Context, v *models.Variant) string {
	if v.Key == "gazetted" {
		return c.PostForm("ruid")
	}
	return c.PostForm("empNo")
}

// saveUploadedImages stores at most one file per accepted field under a
// collision-resistant generated name and returns fieldName -> stored name.
// A missing field is not an error; a bad file aborts the whole submission.
func saveUploadedImages(c *gin.Context, fields []string) (map[string]string, error) {
	stored := make(map[string]string)

	for _, field := range fields {
		file, err := c.FormFile(field)
		if err != nil {
			// Absent file leaves the reference empty
			continue
		}

		if err := checkUpload(file); err != nil {
			return nil, err
		}

		name := generateUploadName(field, filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(config.UploadPath(), name)); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", field, err)
		}
		stored[field] = name
	}

	return stored, nil
}

func checkUpload(file *multipart.FileHeader) error {
	if file.Size > maxUploadSize {
		return &uploadError{
			status:  http.StatusRequestEntityTooLarge,
			message: "File too large. Maximum size is 5 MB",
		}
	}

	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		return &uploadError{
			status:  http.StatusUnsupportedMediaType,
			message: "Only image files are allowed (JPEG, PNG, GIF, WEBP)",
		}
	}

	return nil
}

// generateUploadName builds {field}-{millis}-{random}{ext} so concurrent
// uploads never collide without locking.
func generateUploadName(field, ext string) string {
	return fmt.Sprintf("%s-%d-%d%s", field, time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}

// notifyNewSubmission sends a best-effort heads-up to the configured admin
// address. Failures are logged, never surfaced to the applicant.
func notifyNewSubmission(v *models.Variant, rec models.Record) {
	to := config.NotifyEmail()
	if to == "" {
		return
	}

	base := rec.Base()
	subject := fmt.Sprintf("New %s ID card application %s", v.Label, base.ApplicationNo)
	html := fmt.Sprintf(
		"<p>%s (%s) submitted a %s ID card application.</p><p>Application No: %s</p>",
		base.Name, rec.BusinessKey(), v.Label, base.ApplicationNo,
	)

	if err := config.SendMail([]string{to}, subject, html); err != nil {
		log.Printf("Warning: failed to send submission notification: %v", err)
	}
}
