package service

import (
	"adminbase/internal/entity"
	"testing"
)

func flatMenu(uuid, name, parentID string, sort int) entity.DbMenu {
	return entity.DbMenu{
		UUID:     uuid,
		Name:     name,
		ParentID: parentID,
		Type:     entity.MenuTypeMenu,
		Sort:     sort,
		Status:   entity.StatusActive,
	}
}

func countTreeNodes(nodes []*entity.MenuTreeNode) int {
	total := 0
	for _, node := range nodes {
		total += 1 + countTreeNodes(node.Children)
	}
	return total
}

func TestBuildMenuTree(t *testing.T) {
	tests := []struct {
		name      string
		menus     []entity.DbMenu
		wantRoots []string
		wantTotal int
	}{
		{
			name:      "空输入返回空森林",
			menus:     []entity.DbMenu{},
			wantRoots: []string{},
			wantTotal: 0,
		},
		{
			name: "两级树正常挂接",
			menus: []entity.DbMenu{
				flatMenu("a", "仪表盘", "", 0),
				flatMenu("b", "系统管理", "", 1),
				flatMenu("c", "用户管理", "b", 1),
				flatMenu("d", "角色管理", "b", 2),
			},
			wantRoots: []string{"a", "b"},
			wantTotal: 4,
		},
		{
			name: "父级缺失的节点提升为根",
			menus: []entity.DbMenu{
				flatMenu("a", "仪表盘", "", 0),
				flatMenu("c", "用户管理", "missing", 1),
			},
			wantRoots: []string{"a", "c"},
			wantTotal: 2,
		},
		{
			name: "自引用节点提升为根",
			menus: []entity.DbMenu{
				flatMenu("a", "仪表盘", "a", 0),
			},
			wantRoots: []string{"a"},
			wantTotal: 1,
		},
		{
			name: "两节点互为父子时全部降级为根",
			menus: []entity.DbMenu{
				flatMenu("a", "甲", "b", 0),
				flatMenu("b", "乙", "a", 1),
			},
			wantRoots: []string{"a", "b"},
			wantTotal: 2,
		},
		{
			name: "环外节点不受环影响",
			menus: []entity.DbMenu{
				flatMenu("a", "甲", "b", 0),
				flatMenu("b", "乙", "a", 1),
				flatMenu("c", "丙", "", 2),
				flatMenu("d", "丁", "c", 3),
			},
			wantRoots: []string{"a", "b", "c"},
			wantTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots := BuildMenuTree(tt.menus)

			if len(roots) != len(tt.wantRoots) {
				t.Fatalf("期望 %d 个根节点，实际 %d 个", len(tt.wantRoots), len(roots))
			}
			for i, root := range roots {
				if root.UUID != tt.wantRoots[i] {
					t.Errorf("根节点[%d] 期望 %q，实际 %q", i, tt.wantRoots[i], root.UUID)
				}
			}
			if total := countTreeNodes(roots); total != tt.wantTotal {
				t.Errorf("期望节点总数 %d，实际 %d", tt.wantTotal, total)
			}
		})
	}
}

func TestBuildMenuTreeChildOrder(t *testing.T) {
	menus := []entity.DbMenu{
		flatMenu("root", "系统管理", "", 0),
		flatMenu("c1", "用户管理", "root", 1),
		flatMenu("c2", "角色管理", "root", 2),
		flatMenu("c3", "菜单管理", "root", 3),
	}

	roots := BuildMenuTree(menus)
	if len(roots) != 1 {
		t.Fatalf("期望 1 个根节点，实际 %d 个", len(roots))
	}

	children := roots[0].Children
	want := []string{"c1", "c2", "c3"}
	if len(children) != len(want) {
		t.Fatalf("期望 %d 个子节点，实际 %d 个", len(want), len(children))
	}
	for i, child := range children {
		if child.UUID != want[i] {
			t.Errorf("子节点[%d] 期望 %q，实际 %q", i, want[i], child.UUID)
		}
	}
}

func TestBuildMenuTreeDisabledParentChildPromoted(t *testing.T) {
	// 父级被停用后不在输入集合中，子级提升为根而不是被丢弃
	menus := []entity.DbMenu{
		flatMenu("a", "仪表盘", "", 0),
		flatMenu("c", "用户管理", "b", 1),
	}

	roots := BuildMenuTree(menus)
	if len(roots) != 2 {
		t.Fatalf("期望 2 个根节点，实际 %d 个", len(roots))
	}
	if roots[1].UUID != "c" {
		t.Errorf("孤儿节点应提升为根，实际根为 %q", roots[1].UUID)
	}
	if len(roots[1].Children) != 0 {
		t.Errorf("孤儿节点不应有子节点")
	}
}
