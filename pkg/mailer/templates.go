package mailer

import (
	"fmt"
	"html"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/model"
)

// 邮件正文模板
// 内容为内联 HTML，宾客可见字段一律转义，避免管理员录入内容注入标签

func invitationBody(w *config.WeddingConfig, guest *model.Guest, rsvpURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
  .button { display: inline-block; background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
  .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class='container'>
  <div class='header'><h1>🎉 诚挚邀请</h1></div>
  <div class='content'>
    <p>%s，您好：</p>
    <p>我们（%s）诚挚邀请您出席我们的婚礼。</p>
    <p><strong>请点击下方按钮确认您是否出席：</strong></p>
    <div style='text-align: center;'><a href='%s' class='button'>填写回执</a></div>
    <p>您还可以填写随行人数与饮食禁忌。</p>
    <p><em>此链接为您的专属链接，请勿转发他人。</em></p>
  </div>
  <div class='footer'>
    <p>如按钮无法点击，请将以下链接复制到浏览器：<br><a href='%s'>%s</a></p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(guest.FullName()),
		html.EscapeString(w.CoupleNames),
		rsvpURL, rsvpURL, rsvpURL,
	)
}

func confirmationBody(w *config.WeddingConfig, guest *model.Guest) string {
	dietary := ""
	if guest.DietaryRestrictions != "" {
		dietary = fmt.Sprintf("<p>饮食禁忌：<strong>%s</strong></p>", html.EscapeString(guest.DietaryRestrictions))
	}
	venue := ""
	if w.Venue != "" {
		venue = fmt.Sprintf("<p>地点：<strong>%s</strong></p>", html.EscapeString(w.Venue))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: #10b981; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
  .info-box { background: white; padding: 15px; border-left: 4px solid #10b981; margin: 20px 0; }
</style>
</head>
<body>
<div class='container'>
  <div class='header'><h1>✅ 已收到您的确认</h1></div>
  <div class='content'>
    <p>%s，您好：</p>
    <p>感谢您确认出席我们的婚礼！🎊</p>
    <div class='info-box'>
      <p><strong>您的回执信息：</strong></p>
      <p>出席人数：<strong>%d</strong></p>
      %s%s
    </div>
    <p>后续的婚礼细节将另行通知，期待与您相见！</p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(guest.FullName()),
		guest.NumberOfPeople,
		dietary, venue,
	)
}

func declineBody(_ *config.WeddingConfig, guest *model.Guest) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: #6b7280; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
</style>
</head>
<body>
<div class='container'>
  <div class='header'><h1>已收到您的回复</h1></div>
  <div class='content'>
    <p>%s，您好：</p>
    <p>我们已收到您的回复。很遗憾这次无法与您相聚，期待下次有机会一起庆祝。</p>
  </div>
</div>
</body>
</html>`,
		html.EscapeString(guest.FullName()),
	)
}
