package sendgrid

import (
	"bytes"
	"html/template"

	"github.com/pawcrate/pawcrate-backend/internal/types"
)

var feedbackTemplate = template.Must(template.New("feedback").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>How did {{.DogName}} like their box?</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #f8f9fa; padding: 30px; border-radius: 10px;">
    <h1 style="color: #ff9800; margin-top: 0;">How did {{.DogName}} like their box?</h1>
    <p>Hi there!</p>
    <p>We hope {{.DogName}} is enjoying their latest toy subscription box! We'd love to hear your feedback so we can make the next box even better.</p>
    <h2 style="color: #ff9800; font-size: 18px;">Products in this box:</h2>
    <div style="margin: 20px 0;">
      {{range .Products}}
      <div style="background: white; padding: 15px; margin-bottom: 15px; border-radius: 8px;">
        {{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}" style="max-width: 100%; height: auto; border-radius: 5px; margin-bottom: 10px;" />{{end}}
        <h3 style="margin: 10px 0; font-size: 16px;">{{.Title}}</h3>
      </div>
      {{end}}
    </div>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.FeedbackURL}}"
         style="display: inline-block; background-color: #ff9800; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px;">
        Share Your Feedback
      </a>
    </div>
    <p style="font-size: 14px; color: #666; margin-top: 30px;">
      Your feedback helps us select the perfect toys for {{.DogName}}'s next box. It only takes 2 minutes!
    </p>
    <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
    <p style="font-size: 12px; color: #999; text-align: center;">
      Thank you for being a valued subscriber!<br>
      If you have any questions, please don't hesitate to reach out.
    </p>
  </div>
</body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background-color: #f8f9fa; padding: 30px; border-radius: 10px;">
    <h1 style="color: #ff9800; margin-top: 0;">Welcome to the pack, {{.DogName}}!</h1>
    <p>Your first toy box is on its way. We'll check in after it arrives to hear what {{.DogName}} thinks.</p>
  </div>
</body>
</html>`))

func renderFeedbackEmail(data types.FeedbackEmailData) (string, error) {
	var buf bytes.Buffer
	if err := feedbackTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderWelcomeEmail(dogName string) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, struct{ DogName string }{DogName: dogName}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
