package skillhive

import (
	"time"

	"skillhive-agent/internal/core/domain"
)

// The backend is mid-migration from snake_case to camelCase field names and
// answers with either (sometimes both) depending on the endpoint. Every wire
// type below carries both spellings and folds them into the one canonical
// domain shape here, so nothing past this file ever branches on naming.
// camelCase wins when both are present.

func pick(camel, snake string) string {
	if camel != "" {
		return camel
	}
	return snake
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(camel, snake string) time.Time {
	s := pick(camel, snake)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type apiUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	FirstNameSnake string `json:"first_name"`
	LastName       string `json:"lastName"`
	LastNameSnake  string `json:"last_name"`
	Address        string `json:"address"`
	Birthday       string `json:"birthday"`
	AvatarURL      string `json:"avatarUrl"`
	AvatarURLSnake string `json:"avatar_url"`
	Bio            string `json:"bio"`
	CreatedAt      string `json:"createdAt"`
	CreatedAtSnake string `json:"created_at"`
	UpdatedAt      string `json:"updatedAt"`
	UpdatedAtSnake string `json:"updated_at"`
}

func (u apiUser) toDomain() domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: pick(u.FirstName, u.FirstNameSnake),
		LastName:  pick(u.LastName, u.LastNameSnake),
		Address:   u.Address,
		Birthday:  u.Birthday,
		AvatarURL: pick(u.AvatarURL, u.AvatarURLSnake),
		Bio:       u.Bio,
		CreatedAt: parseTime(u.CreatedAt, u.CreatedAtSnake),
		UpdatedAt: parseTime(u.UpdatedAt, u.UpdatedAtSnake),
	}
}

type apiPrivateProfile struct {
	apiUser
	FollowingIDs      []string `json:"followingIds"`
	FollowingIDsSnake []string `json:"following_ids"`
	FollowerIDs       []string `json:"followerIds"`
	FollowerIDsSnake  []string `json:"follower_ids"`
}

func (p apiPrivateProfile) toDomain() domain.PrivateProfile {
	following := p.FollowingIDs
	if following == nil {
		following = p.FollowingIDsSnake
	}
	followers := p.FollowerIDs
	if followers == nil {
		followers = p.FollowerIDsSnake
	}
	return domain.PrivateProfile{
		User:         p.apiUser.toDomain(),
		FollowingIDs: following,
		FollowerIDs:  followers,
	}
}

type apiAuthResponse struct {
	Token string  `json:"token"`
	User  apiUser `json:"user"`
}

type apiMediaItem struct {
	URL         string `json:"url"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type apiProjectDetails struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Status         string `json:"status"`
	GithubURL      string `json:"githubUrl"`
	GithubURLSnake string `json:"github_url"`
}

type apiCertificationDetails struct {
	Name                string `json:"name"`
	Provider            string `json:"provider"`
	CompletionDate      string `json:"completionDate"`
	CompletionDateSnake string `json:"completion_date"`
	CredentialURL       string `json:"credentialUrl"`
	CredentialURLSnake  string `json:"credential_url"`
}

type apiTemplate struct {
	Type               string                   `json:"type"`
	Completed          []string                 `json:"completed"`
	SkillsLearned      []string                 `json:"skillsLearned"`
	SkillsLearnedSnake []string                 `json:"skills_learned"`
	Project            *apiProjectDetails       `json:"projectDetails"`
	ProjectSnake       *apiProjectDetails       `json:"project_details"`
	Certification      *apiCertificationDetails `json:"certificationDetails"`
	CertificationSnake *apiCertificationDetails `json:"certification_details"`
}

func (t *apiTemplate) toDomain() *domain.ProgressTemplate {
	if t == nil {
		return nil
	}
	skills := t.SkillsLearned
	if skills == nil {
		skills = t.SkillsLearnedSnake
	}
	out := &domain.ProgressTemplate{
		Type:          t.Type,
		Completed:     t.Completed,
		SkillsLearned: skills,
	}
	if p := t.Project; p != nil {
		out.Project = projectToDomain(p)
	} else if t.ProjectSnake != nil {
		out.Project = projectToDomain(t.ProjectSnake)
	}
	if c := t.Certification; c != nil {
		out.Certification = certToDomain(c)
	} else if t.CertificationSnake != nil {
		out.Certification = certToDomain(t.CertificationSnake)
	}
	return out
}

func projectToDomain(p *apiProjectDetails) *domain.ProjectDetails {
	return &domain.ProjectDetails{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		GithubURL:   pick(p.GithubURL, p.GithubURLSnake),
	}
}

func certToDomain(c *apiCertificationDetails) *domain.CertificationDetails {
	return &domain.CertificationDetails{
		Name:           c.Name,
		Provider:       c.Provider,
		CompletionDate: pick(c.CompletionDate, c.CompletionDateSnake),
		CredentialURL:  pick(c.CredentialURL, c.CredentialURLSnake),
	}
}

type apiPost struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	UserIDSnake    string         `json:"user_id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Media          []apiMediaItem `json:"media"`
	Type           string         `json:"type"`
	Template       *apiTemplate   `json:"template"`
	TemplateSnake  *apiTemplate   `json:"progress_template"`
	CreatedAt      string         `json:"createdAt"`
	CreatedAtSnake string         `json:"created_at"`
	UpdatedAt      string         `json:"updatedAt"`
	UpdatedAtSnake string         `json:"updated_at"`
}

func (p apiPost) toDomain() domain.Post {
	tpl := p.Template
	if tpl == nil {
		tpl = p.TemplateSnake
	}
	var media []domain.MediaItem
	for _, m := range p.Media {
		media = append(media, domain.MediaItem{URL: m.URL, Type: m.Type, Description: m.Description})
	}
	return domain.Post{
		ID:        p.ID,
		UserID:    pick(p.UserID, p.UserIDSnake),
		Title:     p.Title,
		Content:   p.Content,
		Media:     media,
		Type:      p.Type,
		Template:  tpl.toDomain(),
		CreatedAt: parseTime(p.CreatedAt, p.CreatedAtSnake),
		UpdatedAt: parseTime(p.UpdatedAt, p.UpdatedAtSnake),
	}
}

type apiComment struct {
	ID             string `json:"id"`
	PostID         string `json:"postId"`
	PostIDSnake    string `json:"post_id"`
	UserID         string `json:"userId"`
	UserIDSnake    string `json:"user_id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
	CreatedAtSnake string `json:"created_at"`
}

func (c apiComment) toDomain() domain.Comment {
	return domain.Comment{
		ID:        c.ID,
		PostID:    pick(c.PostID, c.PostIDSnake),
		UserID:    pick(c.UserID, c.UserIDSnake),
		Content:   c.Content,
		CreatedAt: parseTime(c.CreatedAt, c.CreatedAtSnake),
	}
}

type apiLike struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	UserIDSnake    string `json:"user_id"`
	CreatedAt      string `json:"createdAt"`
	CreatedAtSnake string `json:"created_at"`
}

func (l apiLike) toDomain() domain.Like {
	return domain.Like{
		ID:        l.ID,
		UserID:    pick(l.UserID, l.UserIDSnake),
		CreatedAt: parseTime(l.CreatedAt, l.CreatedAtSnake),
	}
}

type apiLearningPlan struct {
	ID             string   `json:"id"`
	UserID         string   `json:"userId"`
	UserIDSnake    string   `json:"user_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Goals          []string `json:"goals"`
	Timeline       string   `json:"timeline"`
	Status         string   `json:"status"`
	CreatedAt      string   `json:"createdAt"`
	CreatedAtSnake string   `json:"created_at"`
	UpdatedAt      string   `json:"updatedAt"`
	UpdatedAtSnake string   `json:"updated_at"`
}

func (p apiLearningPlan) toDomain() domain.LearningPlan {
	return domain.LearningPlan{
		ID:          p.ID,
		UserID:      pick(p.UserID, p.UserIDSnake),
		Title:       p.Title,
		Description: p.Description,
		Goals:       p.Goals,
		Timeline:    p.Timeline,
		Status:      p.Status,
		CreatedAt:   parseTime(p.CreatedAt, p.CreatedAtSnake),
		UpdatedAt:   parseTime(p.UpdatedAt, p.UpdatedAtSnake),
	}
}

type apiNotification struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	ActorName      string `json:"actorName"`
	ActorNameSnake string `json:"actor_name"`
	PostID         string `json:"postId"`
	PostIDSnake    string `json:"post_id"`
	PostTitle      string `json:"postTitle"`
	PostTitleSnake string `json:"post_title"`
	CommentID      string `json:"commentId"`
	CommentIDSnake string `json:"comment_id"`
	Content        string `json:"content"`
	IsRead         bool   `json:"isRead"`
	IsReadSnake    bool   `json:"is_read"`
	CreatedAt      string `json:"createdAt"`
	CreatedAtSnake string `json:"created_at"`
}

func (n apiNotification) toDomain() domain.Notification {
	return domain.Notification{
		ID:        n.ID,
		Type:      n.Type,
		ActorName: pick(n.ActorName, n.ActorNameSnake),
		PostID:    pick(n.PostID, n.PostIDSnake),
		PostTitle: pick(n.PostTitle, n.PostTitleSnake),
		CommentID: pick(n.CommentID, n.CommentIDSnake),
		Content:   n.Content,
		IsRead:    n.IsRead || n.IsReadSnake,
		CreatedAt: parseTime(n.CreatedAt, n.CreatedAtSnake),
	}
}

type apiMedia struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	ContentType      string `json:"contentType"`
	ContentTypeSnake string `json:"content_type"`
	Description      string `json:"description"`
}

func (m apiMedia) toDomain() domain.Media {
	return domain.Media{
		ID:          m.ID,
		URL:         m.URL,
		ContentType: pick(m.ContentType, m.ContentTypeSnake),
		Description: m.Description,
	}
}

type apiUnreadCount struct {
	Count int `json:"count"`
}

// postBody is the outbound shape for create/update post calls. The backend's
// write path only accepts camelCase.
type postBody struct {
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Media    []apiMediaItem `json:"media,omitempty"`
	Type     string         `json:"type"`
	Template *apiTemplate   `json:"template,omitempty"`
}

func postToBody(p domain.Post) postBody {
	var media []apiMediaItem
	for _, m := range p.Media {
		media = append(media, apiMediaItem{URL: m.URL, Type: m.Type, Description: m.Description})
	}
	body := postBody{
		Title:   p.Title,
		Content: p.Content,
		Media:   media,
		Type:    p.Type,
	}
	if t := p.Template; t != nil {
		body.Template = &apiTemplate{
			Type:          t.Type,
			Completed:     t.Completed,
			SkillsLearned: t.SkillsLearned,
		}
		if t.Project != nil {
			body.Template.Project = &apiProjectDetails{
				Name:        t.Project.Name,
				Description: t.Project.Description,
				Status:      t.Project.Status,
				GithubURL:   t.Project.GithubURL,
			}
		}
		if t.Certification != nil {
			body.Template.Certification = &apiCertificationDetails{
				Name:           t.Certification.Name,
				Provider:       t.Certification.Provider,
				CompletionDate: t.Certification.CompletionDate,
				CredentialURL:  t.Certification.CredentialURL,
			}
		}
	}
	return body
}

type planBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Goals       []string `json:"goals"`
	Timeline    string   `json:"timeline"`
	Status      string   `json:"status"`
}
