package service

import "adminbase/internal/entity"

// BuildMenuTree 将按 sort 升序排好的扁平菜单集合组装成树。
//
// 两趟构建：先为每条菜单建立 uuid → 节点映射，再按输入顺序挂接父子关系。
// parentId 指向的菜单不在输入集合中时（例如父级被停用而子级仍启用），该
// 节点提升为根节点而不是被丢弃，这是有意的策略。父链成环的数据同样降级
// 为根节点，保证输出不含环且每个节点恰好出现一次。输入为空时返回空森林，
// 没有错误路径；映射仅在本次调用内存活。
func BuildMenuTree(menus []entity.DbMenu) []*entity.MenuTreeNode {
	nodes := make(map[string]*entity.MenuTreeNode, len(menus))
	parentOf := make(map[string]string, len(menus))
	for i := range menus {
		menu := &menus[i]
		nodes[menu.UUID] = &entity.MenuTreeNode{
			UUID:       menu.UUID,
			Name:       menu.Name,
			Path:       menu.Path,
			Component:  menu.Component,
			Icon:       menu.Icon,
			Type:       menu.Type,
			Permission: menu.Permission,
			Sort:       menu.Sort,
			Children:   []*entity.MenuTreeNode{},
		}
		parentOf[menu.UUID] = menu.ParentID
	}

	roots := make([]*entity.MenuTreeNode, 0, len(menus))
	for i := range menus {
		menu := &menus[i]
		node := nodes[menu.UUID]
		parent, ok := nodes[menu.ParentID]
		if ok && menu.ParentID != menu.UUID && !onOwnAncestry(parentOf, menu.UUID) {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	return roots
}

// onOwnAncestry 沿父链上溯，判断 uuid 是否是自己的祖先（即数据成环）。
// visited 集合保证即使遇到不含自身的环也会终止。
func onOwnAncestry(parentOf map[string]string, uuid string) bool {
	visited := map[string]struct{}{uuid: {}}
	current := parentOf[uuid]
	for current != "" {
		if current == uuid {
			return true
		}
		if _, seen := visited[current]; seen {
			return false
		}
		visited[current] = struct{}{}
		current = parentOf[current]
	}
	return false
}
