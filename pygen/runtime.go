package pygen

import (
	"fmt"
	"strings"
)

// HelperPublicSymbols lists the names the helper preamble defines for
// procedure bodies.
var HelperPublicSymbols = []string{
	"PI",
	"get_userdata_by_name",
	"set_userdata_by_name",
	"find_child_by_name",
	"get_camera",
	"generate_strokes_for_children",
	"build_stroke_geometry",
}

// helperModule is the preamble prepended to every installed procedure. It is
// plain host-sandbox Python with no per-object state, so the same text can be
// installed into any number of generator slots.
const helperModule = `import c4d
import math

PI = math.pi

def get_userdata_by_name(obj, param_name):
    """Get UserData value by parameter name."""
    ud = obj.GetUserDataContainer()
    for desc_id, bc in ud:
        if bc[c4d.DESC_NAME] == param_name:
            return obj[desc_id]
    return None

def set_userdata_by_name(obj, param_name, value):
    """Set UserData value by parameter name."""
    ud = obj.GetUserDataContainer()
    for desc_id, bc in ud:
        if bc[c4d.DESC_NAME] == param_name:
            obj[desc_id] = value
            return True
    return False

def find_child_by_name(parent, name):
    """Find a child object by name."""
    child = parent.GetDown()
    while child:
        if child.GetName() == name:
            return child
        child = child.GetNext()
    return None

def get_camera():
    """Get the active camera from the document."""
    doc = c4d.documents.GetActiveDocument()
    bd = doc.GetActiveBaseDraw()
    cam = bd.GetSceneCamera(doc) if bd else None
    if not cam:
        obj = doc.GetFirstObject()
        while obj:
            if obj.GetType() == c4d.Ocamera:
                cam = obj
                break
            obj = obj.GetNext()
    return cam

def generate_strokes_for_children(op, cam_world, gen_mg):
    """Generate camera-facing stroke geometry for all raw primitive children.

    Splines get stroke quads along their edges; meshes get silhouette edge
    detection first. Children without stroke metadata are skipped.
    """
    gen_mg_inv = ~gen_mg
    all_points = []
    all_polys = []

    def add_stroke_quad(p1, p2, width):
        mid = (p1 + p2) * 0.5
        to_cam = (cam_world - mid).GetNormalized()
        tangent = (p2 - p1).GetNormalized()
        perp = tangent.Cross(to_cam).GetNormalized() * width
        base = len(all_points)
        all_points.extend([
            gen_mg_inv * (p1 - perp), gen_mg_inv * (p1 + perp),
            gen_mg_inv * (p2 + perp), gen_mg_inv * (p2 - perp),
        ])
        all_polys.append(c4d.CPolygon(base, base + 1, base + 2, base + 3))

    def process_spline(child, width):
        child[c4d.ID_BASEOBJECT_VISIBILITY_EDITOR] = 1
        spline = child.GetCache() or child.GetDeformCache() or child
        if spline.GetType() != 5137 and not spline.IsInstanceOf(c4d.Ospline):
            return
        child_mg = child.GetMg()
        points = [child_mg * p for p in spline.GetAllPoints()]
        if len(points) < 2:
            return
        closed = child.GetType() in [5181, 5176, 5180, 5178, 5186, 5175]
        edges = len(points) if closed else len(points) - 1
        for i in range(edges):
            add_stroke_quad(points[i], points[(i + 1) % len(points)], width)

    def process_solid(child, width):
        mesh = child.GetCache() or child.GetDeformCache() or child
        if mesh.GetType() == 5118:
            mesh = mesh.GetCache()
            if mesh is None:
                return
        if not mesh.IsInstanceOf(c4d.Opolygon):
            return
        child_mg = child.GetMg()
        points = [child_mg * p for p in mesh.GetAllPoints()]
        polys = mesh.GetAllPolygons()
        if not polys:
            return
        facing = []
        for poly in polys:
            p0, p1, p2 = points[poly.a], points[poly.b], points[poly.c]
            if poly.c == poly.d:
                center = (p0 + p1 + p2) / 3.0
            else:
                center = (p0 + p1 + p2 + points[poly.d]) / 4.0
            normal = (p1 - p0).Cross(p2 - p0).GetNormalized()
            facing.append(normal.Dot((cam_world - center).GetNormalized()) > 0)
        edge_faces = {}
        for fi, poly in enumerate(polys):
            verts = [poly.a, poly.b, poly.c]
            if poly.c != poly.d:
                verts.append(poly.d)
            for i in range(len(verts)):
                key = (min(verts[i], verts[(i + 1) % len(verts)]),
                       max(verts[i], verts[(i + 1) % len(verts)]))
                edge_faces.setdefault(key, []).append(fi)
        for key, faces in edge_faces.items():
            if len(faces) == 2:
                silhouette = facing[faces[0]] != facing[faces[1]]
            else:
                silhouette = len(faces) == 1 and facing[faces[0]]
            if silhouette:
                add_stroke_quad(points[key[0]], points[key[1]], width)

    child = op.GetDown()
    while child:
        color = get_userdata_by_name(child, "StrokeColor")
        if color is not None:
            width = get_userdata_by_name(child, "StrokeWidth") or 1.0
            if get_userdata_by_name(child, "IsSolidObject"):
                process_solid(child, width)
            else:
                process_spline(child, width)
        child = child.GetNext()

    return all_points, all_polys

def build_stroke_geometry(points, polys, name="Strokes"):
    """Build a PolygonObject from stroke points and polys."""
    if not polys:
        return None
    result = c4d.PolygonObject(len(points), len(polys))
    result.SetAllPoints(points)
    for i, poly in enumerate(polys):
        result.SetPolygon(i, poly)
    result.Message(c4d.MSG_UPDATE)
    result.SetName(name)
    return result
`

// HelperModule returns the shared helper preamble.
func HelperModule() string {
	return helperModule
}

// PassThroughBody is the trivial procedure installed when an object declares
// neither bindings nor a manual procedure: children pass through unchanged.
const PassThroughBody = `def main():
    return None
`

// StrokeFallbackBody is the default body for composites with parts but no
// bindings: it generates camera-facing stroke/silhouette geometry for every
// visible raw child.
const StrokeFallbackBody = `def main():
    # Default: generate strokes for all raw primitive children
    cam = get_camera()
    if cam is None:
        return None

    cam_world = cam.GetMg().off
    gen_mg = op.GetMg()

    stroke_points, stroke_polys = generate_strokes_for_children(op, cam_world, gen_mg)

    if stroke_polys:
        return build_stroke_geometry(stroke_points, stroke_polys, op.GetName() + "_Strokes")

    return None
`

// strokePass is the tail substituted for a compiled body's bare return so
// stroke geometry still renders for raw children after bindings are applied.
func strokePass(ind string) string {
	lines := []string{
		"# Generate strokes for raw primitive children",
		"cam = get_camera()",
		"if cam:",
		ind + "cam_world = cam.GetMg().off",
		ind + "gen_mg = op.GetMg()",
		ind + "stroke_points, stroke_polys = generate_strokes_for_children(op, cam_world, gen_mg)",
		ind + "if stroke_polys:",
		ind + ind + `return build_stroke_geometry(stroke_points, stroke_polys, op.GetName() + "_Strokes")`,
		"return None",
	}

	var sb strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&sb, "%s%s\n", ind, line)
	}

	return sb.String()
}

// InjectStroke replaces a compiled body's trailing bare return with the
// stroke pass. Bodies from authors are never rewritten; they own their
// stroke handling.
func InjectStroke(body string, indent int) string {
	ind := strings.Repeat(" ", indent)
	bare := ind + "return None\n"

	idx := strings.LastIndex(body, bare)
	if idx < 0 || idx+len(bare) != len(body) {
		return body
	}

	return body[:idx] + strokePass(ind)
}
