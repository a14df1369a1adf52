package policy

import "fmt"

// Action 资源上的操作名
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionSearch   Action = "search"
	ActionMyPosts  Action = "my_posts"
	ActionComment  Action = "comment"
	ActionRate     Action = "rate"
	ActionLike     Action = "like"
	ActionFavorite Action = "favorite"
	ActionUpload   Action = "upload"
)

// 资源名
const (
	ResourceCategory = "category"
	ResourcePost     = "post"
	ResourceImage    = "image"
	ResourceFavorite = "favorite"
)

// table (resource, action) -> 判定函数
// 字符串动作分发的显式版本：缺表项的路由在启动时报错，而不是运行时放行
var table = map[string]map[Action]Decision{
	ResourceCategory: {
		ActionList:     AllowAny,
		ActionRetrieve: AllowAny,
	},
	ResourcePost: {
		ActionList:     AllowAny,
		ActionRetrieve: AllowAny,
		ActionSearch:   AllowAny,
		ActionMyPosts:  RequireAuthenticated,
		ActionCreate:   RequireAuthenticated,
		ActionUpdate:   RequireOwner,
		ActionDelete:   RequireOwner,
		ActionComment:  RequireAuthenticated,
		ActionRate:     RequireAuthenticated,
		ActionLike:     RequireAuthenticated,
		ActionFavorite: RequireAuthenticated,
	},
	ResourceImage: {
		ActionList:     AllowAny,
		ActionRetrieve: AllowAny,
		ActionCreate:   RequireOwner, // 归属经由父 Post 的作者
		ActionUpdate:   RequireOwner,
		ActionDelete:   RequireOwner,
		ActionUpload:   RequireAuthenticated,
	},
	ResourceFavorite: {
		ActionList: RequireAuthenticated,
	},
}

// Lookup 返回 (resource, action) 的判定函数
func Lookup(resource string, action Action) (Decision, error) {
	actions, ok := table[resource]
	if !ok {
		return nil, fmt.Errorf("policy: unknown resource %q", resource)
	}
	decision, ok := actions[action]
	if !ok {
		return nil, fmt.Errorf("policy: no rule for %s/%s", resource, action)
	}
	return decision, nil
}

// Check 执行判定，查表失败一律拒绝
func Check(resource string, action Action, actor Actor, ownerID string) bool {
	decision, err := Lookup(resource, action)
	if err != nil {
		return false
	}
	return decision(actor, ownerID)
}

// Validate 启动时的完整性检查：每个注册路由都必须有表项
func Validate(bindings [][2]string) error {
	for _, b := range bindings {
		if _, err := Lookup(b[0], Action(b[1])); err != nil {
			return err
		}
	}
	return nil
}
