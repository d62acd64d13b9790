package notification

import "html/template"

var invitationTemplate = template.Must(template.New("invitation").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
        .message { border-left: 3px solid #4F46E5; padding-left: 12px; color: #555; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Join {{.OrgName}}</h1>
        <p>{{.InviterName}} has invited you to join <strong>{{.OrgName}}</strong>.</p>
        {{if .Message}}<p class="message">{{.Message}}</p>{{end}}
        <p><a href="{{.AcceptURL}}" class="button">Accept Invitation</a></p>
        <p>Or copy and paste this link into your browser:</p>
        <p>{{.AcceptURL}}</p>
        <p>This invitation will expire in {{.ExpiryDays}} days.</p>
        <div class="footer">
            <p>If you weren't expecting this invitation, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .button { display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Welcome to {{.OrgName}}!</h1>
        <p>Hi {{.Name}},</p>
        <p>You are now a member of <strong>{{.OrgName}}</strong>.</p>
        <p><a href="{{.DashboardURL}}" class="button">Open Dashboard</a></p>
    </div>
</body>
</html>
`))
