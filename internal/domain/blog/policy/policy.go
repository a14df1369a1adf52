package policy

// Actor 发起请求的身份，ID 为空表示匿名
type Actor struct {
	ID string
}

func (a Actor) IsAuthenticated() bool {
	return a.ID != ""
}

// Decision 纯判定函数：给定 actor 和资源归属，返回是否放行
type Decision func(actor Actor, ownerID string) bool

// AllowAny 公开读接口
func AllowAny(Actor, string) bool {
	return true
}

// RequireAuthenticated 仅要求登录
func RequireAuthenticated(actor Actor, _ string) bool {
	return actor.IsAuthenticated()
}

// RequireOwner 要求 actor 即资源作者
// Image 的归属通过其父 Post 的作者传入
func RequireOwner(actor Actor, ownerID string) bool {
	return actor.IsAuthenticated() && actor.ID == ownerID
}
