package main

import (
	"context"
	"enemauth/internal/config"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const (
	passwordResetSubject = "Reset your password"
	passwordResetHtml    = `<p>We received a request to reset your password.</p>
<p><a href="{{passwordResetUrl}}">Choose a new password</a></p>
<p>If you did not request a password reset, you can ignore this email.</p>`
	passwordResetText = `We received a request to reset your password.

Choose a new password: {{passwordResetUrl}}

If you did not request a password reset, you can ignore this email.`
)

// Manages the SES template used for password reset emails:
//
//	aws create
//	aws delete
//	aws send <to> <password-reset-url>
func main() {
	if len(os.Args) < 2 {
		fail(fmt.Errorf("usage: aws create | delete | send <to> <password-reset-url>"))
	}

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	svc := ses.NewFromConfig(loadAwsConfig(cfg))
	ctx := context.Background()
	name := cfg.AwsEmailPasswordResetTemplate

	var result interface{}
	switch os.Args[1] {
	case "create":
		result, err = svc.CreateTemplate(ctx, &ses.CreateTemplateInput{
			Template: &types.Template{
				SubjectPart:  aws.String(passwordResetSubject),
				HtmlPart:     aws.String(passwordResetHtml),
				TextPart:     aws.String(passwordResetText),
				TemplateName: &name,
			},
		})
	case "delete":
		result, err = svc.DeleteTemplate(ctx, &ses.DeleteTemplateInput{TemplateName: &name})
	case "send":
		if len(os.Args) < 4 {
			fail(fmt.Errorf("usage: aws send <to> <password-reset-url>"))
		}
		data := fmt.Sprintf(`{"passwordResetUrl": %q}`, os.Args[3])
		result, err = svc.SendTemplatedEmail(ctx, &ses.SendTemplatedEmailInput{
			Source:       aws.String(cfg.AwsEmailSender),
			Destination:  &types.Destination{ToAddresses: []string{os.Args[2]}},
			Template:     &name,
			TemplateData: &data,
		})
	default:
		err = fmt.Errorf("unknown command %q", os.Args[1])
	}
	if err != nil {
		fail(err)
	}

	fmt.Println("Success:")
	fmt.Println(result)
}

func loadAwsConfig(cfg *config.Config) aws.Config {
	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(cfg.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AwsAccessKey,
				cfg.AwsSecretKey,
				"",
			),
		),
	)
	if err != nil {
		fail(err)
	}
	return awsCfg
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
